// Package tracer configures OpenTelemetry tracing for the module.
//
// When an OTLP endpoint is configured it installs a global TracerProvider
// exporting over OTLP/HTTP; when the endpoint is empty the provider is a
// no-op and instrumented code pays nothing. The store gateway creates one
// span per remote operation under the instrumentation name
// "github.com/docuseek/docstore".
package tracer
