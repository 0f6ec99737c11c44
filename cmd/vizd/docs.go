package main

// General API documentation for swaggo. Run `swag init -g cmd/vizd/docs.go` to regenerate docs.
//
// @title           vizd API
// @version         1.0
// @description     HTTP API for compiling, loading and registering visualization model plugins.
//
// @contact.name   vizd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
