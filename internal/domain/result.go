package domain

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

var ErrMalformedResult = errors.New("malformed engine result")

// ResultKind tags which variant an EngineResult carries.
type ResultKind int

const (
	ResultEmpty ResultKind = iota
	// ResultStructured is a result object with a text-lines field.
	ResultStructured
	// ResultLines is a sequence of per-line tuples.
	ResultLines
)

func (k ResultKind) String() string {
	switch k {
	case ResultEmpty:
		return "empty"
	case ResultStructured:
		return "structured"
	case ResultLines:
		return "lines"
	}
	return fmt.Sprintf("ResultKind(%d)", int(k))
}

// StructuredResult mirrors pipeline-style engine output: parallel slices of
// texts and (optional) scores.
type StructuredResult struct {
	Texts  []string
	Scores []float64
}

// LineResult is one detected text line.
type LineResult struct {
	Text       string
	Confidence float64 // 0..1, negative when unknown
	Box        image.Rectangle
}

type EngineResult struct {
	Kind       ResultKind
	Structured *StructuredResult
	Lines      []LineResult
}

func EmptyResult() EngineResult { return EngineResult{Kind: ResultEmpty} }

func Structured(texts []string, scores []float64) EngineResult {
	return EngineResult{
		Kind:       ResultStructured,
		Structured: &StructuredResult{Texts: texts, Scores: scores},
	}
}

func Lines(lines ...LineResult) EngineResult {
	return EngineResult{Kind: ResultLines, Lines: lines}
}

// Normalize flattens any result variant into the ordered text sequence
// returned to callers. Lines scored below minConfidence and blank lines are
// dropped. The returned slice is never nil.
func Normalize(r EngineResult, minConfidence float64) ([]string, error) {
	out := []string{}

	switch r.Kind {
	case ResultEmpty:
		return out, nil

	case ResultStructured:
		s := r.Structured
		if s == nil {
			return nil, fmt.Errorf("%w: structured result without payload", ErrMalformedResult)
		}
		if len(s.Scores) > 0 && len(s.Scores) != len(s.Texts) {
			return nil, fmt.Errorf("%w: %d texts but %d scores", ErrMalformedResult, len(s.Texts), len(s.Scores))
		}
		for i, t := range s.Texts {
			if len(s.Scores) > 0 && s.Scores[i] < minConfidence {
				continue
			}
			out = appendLine(out, t)
		}
		return out, nil

	case ResultLines:
		for _, l := range r.Lines {
			if l.Confidence >= 0 && l.Confidence < minConfidence {
				continue
			}
			out = appendLine(out, l.Text)
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: unknown kind %v", ErrMalformedResult, r.Kind)
}

func appendLine(out []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return out
	}
	return append(out, s)
}
