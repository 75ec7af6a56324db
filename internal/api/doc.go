// Package api serves worksheets over HTTP. Handlers parse and validate query
// parameters, call the worksheet service and translate its errors into
// status codes without leaking compiler output or file system paths.
package api
