package parser

import (
	"math"

	"github.com/zphixon/black-dwarf/internal/pos"
	"github.com/zphixon/black-dwarf/pkg/token"
	"github.com/zphixon/black-dwarf/pkg/value"
)

// parseValue reads one value production: a scalar, an Array, or an
// inline Table. depth counts recursive entry into Arrays and inline
// Tables; both count toward the same bound.
func (p *Parser) parseValue(depth int) (*value.Value, error) {
	t := p.scan.Next()
	if t.Kind == token.Error {
		return nil, newScanError(t.Pos, t.ScanErr)
	}

	switch t.Kind {
	case token.Integer:
		return value.NewInteger(t.Int, t.Pos), nil

	case token.Float:
		return value.NewFloat(t.Float64, t.Pos), nil

	case token.Boolean:
		return value.NewBoolean(t.Bool, t.Pos), nil

	case token.String:
		return value.NewString(stripQuotes(t.Lexeme, t.Quote), t.Quote, t.Pos), nil

	case token.Date:
		return p.parseDateWithStitch(t), nil

	case token.Time:
		return value.NewDateTime(timeToDatetime(t), t.Pos), nil

	case token.DateTime:
		return value.NewDateTime(dateTimeTokenToDatetime(t), t.Pos), nil

	case token.LeftBracket:
		return p.parseArray(t.Pos, depth+1)

	case token.LeftBrace:
		return p.parseInlineTable(t.Pos, depth+1)

	case token.Plus:
		return p.parseSignedNumeric(t.Pos, 1)

	case token.Minus:
		return p.parseSignedNumeric(t.Pos, -1)

	case token.Identifier:
		return identifierValue(t)

	default:
		return nil, newParseError(t.Pos, "unexpected token %s in value position", t.Kind)
	}
}

func identifierValue(t token.Token) (*value.Value, error) {
	switch t.Lexeme {
	case "true":
		return value.NewBoolean(true, t.Pos), nil
	case "false":
		return value.NewBoolean(false, t.Pos), nil
	case "inf":
		return value.NewFloat(math.Inf(1), t.Pos), nil
	case "nan":
		return value.NewFloat(math.NaN(), t.Pos), nil
	default:
		return nil, newParseError(t.Pos, "unexpected identifier %q in value position", t.Lexeme)
	}
}

// parseSignedNumeric handles a leading unary '+' or '-': the next token
// must be an Integer, Float, or the keywords inf/nan; anything else is a
// ParseError.
func (p *Parser) parseSignedNumeric(start pos.Pos, sign int64) (*value.Value, error) {
	t := p.scan.Next()
	if t.Kind == token.Error {
		return nil, newScanError(t.Pos, t.ScanErr)
	}

	switch t.Kind {
	case token.Integer:
		return value.NewInteger(sign*t.Int, start), nil
	case token.Float:
		return value.NewFloat(float64(sign)*t.Float64, start), nil
	case token.Identifier:
		switch t.Lexeme {
		case "inf":
			return value.NewFloat(math.Inf(int(sign)), start), nil
		case "nan":
			return value.NewFloat(math.NaN(), start), nil
		}
	}

	return nil, newParseError(t.Pos, "expected a numeric literal after sign, got %s", t.Kind)
}

// parseDateWithStitch combines a Date token immediately followed by a
// Time token into one DateTime value. This is a fallback for whenever a
// date and its trailing time end up as two separate tokens instead of
// the unified datetime lexer matching them in one pass.
func (p *Parser) parseDateWithStitch(dateTok token.Token) *value.Value {
	dt := value.Datetime{HasDate: true, Date: dateTok.DateVal}

	if p.scan.Peek(0).Kind == token.Time {
		timeTok := p.scan.Next()
		dt.HasTime = true
		dt.Time = timeTok.TimeVal
		if timeTok.HasOffset {
			dt.HasOffset = true
			dt.Offset = timeTok.Offset
		}
	}

	return value.NewDateTime(dt, dateTok.Pos)
}

func timeToDatetime(t token.Token) value.Datetime {
	dt := value.Datetime{HasTime: true, Time: t.TimeVal}
	if t.HasOffset {
		dt.HasOffset = true
		dt.Offset = t.Offset
	}
	return dt
}

func dateTimeTokenToDatetime(t token.Token) value.Datetime {
	dt := value.Datetime{HasDate: true, Date: t.DateVal, HasTime: true, Time: t.TimeVal}
	if t.HasOffset {
		dt.HasOffset = true
		dt.Offset = t.Offset
	}
	return dt
}

// parseArray reads `[` already-consumed … `]`: zero or more values
// separated by `,`, with an optional trailing comma.
func (p *Parser) parseArray(start pos.Pos, depth int) (*value.Value, error) {
	if depth > maxDepth {
		return nil, newParseError(start, "recursion limit exceeded")
	}

	arr := value.NewArray(start)

	if p.scan.Peek(0).Kind == token.RightBracket {
		p.scan.Next()
		return arr, nil
	}

	for {
		elem, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}
		arr.Append(elem)

		sep := p.scan.Next()
		switch sep.Kind {
		case token.Error:
			return nil, newScanError(sep.Pos, sep.ScanErr)
		case token.Comma:
			if p.scan.Peek(0).Kind == token.RightBracket {
				p.scan.Next()
				return arr, nil
			}
			continue
		case token.RightBracket:
			return arr, nil
		default:
			return nil, newParseError(sep.Pos, "expected ',' or ']' in array, got %s", sep.Kind)
		}
	}
}

// parseInlineTable reads `{` already-consumed … `}`: zero or more
// key-value pairs separated by `,`, with an optional trailing comma,
// and may span multiple lines.
func (p *Parser) parseInlineTable(start pos.Pos, depth int) (*value.Value, error) {
	if depth > maxDepth {
		return nil, newParseError(start, "recursion limit exceeded")
	}

	tbl := value.NewTable(start)

	if p.scan.Peek(0).Kind == token.RightBrace {
		p.scan.Next()
		return tbl, nil
	}

	for {
		path, err := p.parseKeyPath()
		if err != nil {
			return nil, err
		}

		eq := p.scan.Next()
		if eq.Kind == token.Error {
			return nil, newScanError(eq.Pos, eq.ScanErr)
		}
		if eq.Kind != token.Equals {
			return nil, newParseError(eq.Pos, "expected '=' in inline table, got %s", eq.Kind)
		}

		val, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}
		if err := bindPath(tbl, path, val); err != nil {
			return nil, err
		}

		sep := p.scan.Next()
		switch sep.Kind {
		case token.Error:
			return nil, newScanError(sep.Pos, sep.ScanErr)
		case token.Comma:
			if p.scan.Peek(0).Kind == token.RightBrace {
				p.scan.Next()
				return tbl, nil
			}
			continue
		case token.RightBrace:
			return tbl, nil
		default:
			return nil, newParseError(sep.Pos, "expected ',' or '}' in inline table, got %s", sep.Kind)
		}
	}
}
