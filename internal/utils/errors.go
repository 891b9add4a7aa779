package utils

const (
	errorHTTPClientNilFormat = "httpclient is nil"
)
