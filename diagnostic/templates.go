package diagnostic

// Lexical diagnostics.
var (
	UnexpectedCharacter = Template{
		Code:     "NOA-LEX-001",
		Name:     "UnexpectedCharacter",
		Severity: SeverityError,
		Format:   "unexpected character %q",
	}
	UnterminatedString = Template{
		Code:     "NOA-LEX-002",
		Name:     "UnterminatedString",
		Severity: SeverityError,
		Format:   "unterminated string literal",
	}
	UnknownEscapeSequence = Template{
		Code:     "NOA-LEX-003",
		Name:     "UnknownEscapeSequence",
		Severity: SeverityError,
		Format:   "unknown escape sequence %q",
	}
)

// Syntax diagnostics.
var (
	UnexpectedToken = Template{
		Code:     "NOA-SYN-001",
		Name:     "UnexpectedToken",
		Severity: SeverityError,
		Format:   "unexpected %s",
	}
	ExpectedKinds = Template{
		Code:     "NOA-SYN-002",
		Name:     "ExpectedKinds",
		Severity: SeverityError,
		Format:   "expected %s",
	}
	ExpectedExpression = Template{
		Code:     "NOA-SYN-003",
		Name:     "ExpectedExpression",
		Severity: SeverityError,
		Format:   "expected expression, found %s",
	}
	ElseOmitted = Template{
		Code:     "NOA-SYN-004",
		Name:     "ElseOmitted",
		Severity: SeverityError,
		Format:   "if used as a value must have an else branch",
	}
	TuplesUnsupported = Template{
		Code:     "NOA-SYN-005",
		Name:     "TuplesUnsupported",
		Severity: SeverityError,
		Format:   "tuples are not supported",
	}
	InvalidAssignmentTarget = Template{
		Code:     "NOA-SYN-006",
		Name:     "InvalidAssignmentTarget",
		Severity: SeverityError,
		Format:   "invalid assignment target",
	}
	InvalidExpressionStatement = Template{
		Code:     "NOA-SYN-007",
		Name:     "InvalidExpressionStatement",
		Severity: SeverityWarning,
		Format:   "%s has no effect as a statement",
	}
)

// Templates lists every known template in code order.
var Templates = []Template{
	UnexpectedCharacter,
	UnterminatedString,
	UnknownEscapeSequence,
	UnexpectedToken,
	ExpectedKinds,
	ExpectedExpression,
	ElseOmitted,
	TuplesUnsupported,
	InvalidAssignmentTarget,
	InvalidExpressionStatement,
}

// Lookup returns the template registered for code.
func Lookup(code Code) (Template, bool) {
	for _, t := range Templates {
		if t.Code == code {
			return t, true
		}
	}
	return Template{}, false
}
