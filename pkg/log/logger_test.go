package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

// LoggerTestSuite tests the log package
type LoggerTestSuite struct {
	suite.Suite
	originalLogger zerolog.Logger
	testOutput     *bytes.Buffer
}

// SetupTest runs before each test
func (s *LoggerTestSuite) SetupTest() {
	// Save the original logger
	s.originalLogger = Logger

	// Create a test output buffer
	s.testOutput = &bytes.Buffer{}

	// Configure a test logger that writes to our buffer
	Logger = zerolog.New(s.testOutput).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}

// TearDownTest runs after each test
func (s *LoggerTestSuite) TearDownTest() {
	// Restore the original logger
	Logger = s.originalLogger
}

// TestInfo tests info level logging
func (s *LoggerTestSuite) TestInfo() {
	Info().Str("key", "value").Msg("info message")

	output := s.testOutput.String()
	s.Contains(output, "info message")
	s.Contains(output, `"key":"value"`)
	s.Contains(output, `"level":"info"`)
}

// TestError tests error level logging
func (s *LoggerTestSuite) TestError() {
	Error().Msg("error message")

	output := s.testOutput.String()
	s.Contains(output, "error message")
	s.Contains(output, `"level":"error"`)
}

// TestWarn tests warn level logging
func (s *LoggerTestSuite) TestWarn() {
	Warn().Msg("warn message")

	s.Contains(s.testOutput.String(), `"level":"warn"`)
}

// TestDebug tests debug level logging
func (s *LoggerTestSuite) TestDebug() {
	Debug().Msg("debug message")

	s.Contains(s.testOutput.String(), "debug message")
}

// TestWith tests the component sub-logger
func (s *LoggerTestSuite) TestWith() {
	catalogLog := With("catalog")
	catalogLog.Info().Msg("component message")

	output := s.testOutput.String()
	s.Contains(output, `"component":"catalog"`)
	s.Contains(output, "component message")
}

// TestMultipleMessages tests that messages accumulate in order
func (s *LoggerTestSuite) TestMultipleMessages() {
	Info().Msg("first")
	Info().Msg("second")

	lines := strings.Split(strings.TrimSpace(s.testOutput.String()), "\n")
	s.Len(lines, 2)
	s.Contains(lines[0], "first")
	s.Contains(lines[1], "second")
}

// TestLoggerTestSuite runs the test suite
func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
