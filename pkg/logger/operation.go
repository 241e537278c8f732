package logger

import (
	"time"
)

// StageLogger provides structured logging for a pipeline stage with timing.
// Each report run logs one stage per input file plus the generation passes.
type StageLogger struct {
	logger    Logger
	stage     string
	fields    Fields
	startTime time.Time
}

// NewStageLogger creates a logger scoped to one pipeline stage
func NewStageLogger(stage string, logger Logger) *StageLogger {
	if logger == nil {
		logger = GetGlobalLogger()
	}

	sl := &StageLogger{
		logger:    logger.WithComponent("pipeline"),
		stage:     stage,
		fields:    make(Fields),
		startTime: time.Now(),
	}

	sl.logger.WithField("stage", stage).Debug("Starting stage")
	return sl
}

// WithField adds a field to the stage context
func (sl *StageLogger) WithField(key string, value interface{}) *StageLogger {
	sl.fields[key] = value
	return sl
}

// WithFields adds multiple fields to the stage context
func (sl *StageLogger) WithFields(fields Fields) *StageLogger {
	for k, v := range fields {
		sl.fields[k] = v
	}
	return sl
}

func (sl *StageLogger) merged(extra Fields) Fields {
	fields := Fields{"stage": sl.stage}
	for k, v := range sl.fields {
		fields[k] = v
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}

// Step logs an intermediate step within the stage
func (sl *StageLogger) Step(step string) {
	sl.logger.WithFields(sl.merged(Fields{"step": step})).Debug("Stage step")
}

// Counts logs row counts produced by the stage
func (sl *StageLogger) Counts(message string, counts Fields) {
	sl.logger.WithFields(sl.merged(counts)).Info(message)
}

// Success completes the stage successfully
func (sl *StageLogger) Success(message string) {
	sl.logger.WithFields(sl.merged(Fields{
		"duration": time.Since(sl.startTime).String(),
		"status":   "success",
	})).Info(message)
}

// Error completes the stage with an error
func (sl *StageLogger) Error(err error, message string) {
	sl.logger.WithError(err).WithFields(sl.merged(Fields{
		"duration": time.Since(sl.startTime).String(),
		"status":   "error",
	})).Error(message)
}

// Warning logs a warning during the stage
func (sl *StageLogger) Warning(message string) {
	sl.logger.WithFields(sl.merged(nil)).Warn(message)
}

// TimedStage executes a stage function and logs its outcome and duration
func TimedStage(stage string, logger Logger, fn func() error) error {
	sl := NewStageLogger(stage, logger)

	err := fn()

	if err != nil {
		sl.Error(err, "Stage failed")
	} else {
		sl.Success("Stage completed")
	}

	return err
}
