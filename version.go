package main

const (
	appName    = "EREZChrome"
	appVersion = "1.0.0"
)
