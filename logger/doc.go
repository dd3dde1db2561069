// Package logger provides structured logging for the automl library,
// built on zerolog. It exposes a configurable Logger with component-tagged
// sub-loggers, a global default, and a named-logger registry so individual
// graph nodes can log under their own component tag.
package logger
