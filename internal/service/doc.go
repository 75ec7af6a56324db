// Package service contains the application use cases of the worksheet
// generator. It orchestrates the generation, latex and render packages to
// produce worksheets, their LaTeX documents and compiled artifacts, and is
// shared by every delivery mechanism (CLI, HTTP API and MCP tools).
//
// Services receive their collaborators (template, compiler, logger) through
// constructor injection so tests can substitute a fake compiler and never
// depend on a TeX installation.
package service
