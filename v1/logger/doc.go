// Package logger provides the structured Zap logger used across the
// module, with a small wrapper API (message, error, fields) and an Fx
// module for dependency injection.
package logger
