package scoreflow

import (
	"github.com/viant/scoreflow/extension"
	"github.com/viant/scoreflow/model/types"
	"github.com/viant/scoreflow/tracing"
	"github.com/viant/x"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customizes the scoreflow service.
type Option func(s *Service)

// WithConfig sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger types.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithExtensionTypes sets the extension types
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = types
	}
}

// WithEvaluatorKind registers a custom evaluator kind for declarative
// definitions.
func WithEvaluatorKind(kind string, factory extension.EvaluatorFactory) Option {
	return func(s *Service) {
		s.evaluatorKinds = append(s.evaluatorKinds, namedEvaluatorKind{kind: kind, factory: factory})
	}
}

// WithAggregatorKind registers a custom aggregator kind for declarative
// definitions.
func WithAggregatorKind(kind string, factory extension.AggregatorFactory) Option {
	return func(s *Service) {
		s.aggregatorKinds = append(s.aggregatorKinds, namedAggregatorKind{kind: kind, factory: factory})
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile
// is empty the stdout exporter is used; otherwise traces are written to the
// supplied file path. Safe to call multiple times; the first successful
// initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, for example OTLP, Jaeger or Zipkin. Safe to call multiple
// times; the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
