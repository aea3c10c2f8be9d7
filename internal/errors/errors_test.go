package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-compendium/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "input file not found",
			expected: "NOT_FOUND: input file not found",
		},
		{
			name:     "unrecognized header",
			code:     errors.CodeUnrecognizedHeader,
			message:  "no header grammar matched",
			expected: "UNRECOGNIZED_HEADER: no header grammar matched",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.UnrecognizedHeaderf("block rejected").
		WithMeta("index", 3).
		WithMeta("snippet", "Goblin Small Humanoid")

	s.Assert().Equal(3, err.Meta["index"])
	s.Assert().Equal("Goblin Small Humanoid", err.Meta["snippet"])

	err2 := errors.Internal("write failed").
		WithMetaMap(map[string]interface{}{
			"path": "out/monsters.json",
			"kind": "monster",
		})

	s.Assert().Equal("out/monsters.json", err2.Meta["path"])
	s.Assert().Equal("monster", err2.Meta["kind"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("disk full")
	wrapped := errors.Wrap(baseErr, "failed to write monsters")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to write monsters", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("file not found")
	wrapped := errors.Wrap(baseErr, "input not found")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("input not found", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("dial tcp: connection refused")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "catalog unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("catalog unavailable", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"DataLoss", func() *errors.Error { return errors.DataLossf("test") }, errors.CodeDataLoss},
		{"UnrecognizedHeader", func() *errors.Error { return errors.UnrecognizedHeaderf("test") }, errors.CodeUnrecognizedHeader},
		{"Panic", func() *errors.Error { return errors.Panicf("test") }, errors.CodePanic},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestFormattedConstructors() {
	err := errors.NotFoundf("input %s not found", "monsters.txt")
	s.Assert().Equal(errors.CodeNotFound, err.Code)
	s.Assert().Equal("input monsters.txt not found", err.Message)

	err2 := errors.Panicf("panic while parsing: %v", "index out of range")
	s.Assert().Equal(errors.CodePanic, err2.Code)
	s.Assert().Equal("panic while parsing: index out of range", err2.Message)

	err3 := errors.Newf(errors.CodeDataLoss, "short write to %s", "spells.json")
	s.Assert().Equal(errors.CodeDataLoss, err3.Code)
	s.Assert().Equal("short write to spells.json", err3.Message)
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("test")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.Assert().True(errors.IsNotFound(notFoundErr))
	s.Assert().True(errors.IsNotFound(wrappedErr))
	s.Assert().False(errors.IsNotFound(invalidErr))

	s.Assert().True(errors.IsInvalidArgument(invalidErr))
	s.Assert().False(errors.IsInvalidArgument(notFoundErr))

	s.Assert().True(errors.IsPanic(errors.Wrap(errors.Panicf("boom"), "monster 4")))
	s.Assert().True(errors.IsUnrecognizedHeader(errors.UnrecognizedHeaderf("x")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	err := errors.NotFound("test").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal("value", errors.GetMeta(err)["key"])
	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestExitCode() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 0},
		{errors.CodeInvalidArgument, 2},
		{errors.CodeFailedPrecondition, 2},
		{errors.CodeNotFound, 3},
		{errors.CodeUnavailable, 4},
		{errors.CodeDataLoss, 5},
		{errors.CodeInternal, 1},
		{errors.CodePanic, 1},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.ExitCode())
		})
	}

	s.Assert().Equal(0, errors.ExitCode(nil))
	s.Assert().Equal(3, errors.ExitCode(errors.Wrap(errors.NotFound("x"), "y")))
}

func (s *ErrorsTestSuite) TestFatal() {
	s.Assert().True(errors.CodeInternal.Fatal())
	s.Assert().True(errors.CodeInvalidArgument.Fatal())
	s.Assert().False(errors.CodeUnrecognizedHeader.Fatal())
	s.Assert().False(errors.CodePanic.Fatal())
	s.Assert().False(errors.CodeOK.Fatal())
}
