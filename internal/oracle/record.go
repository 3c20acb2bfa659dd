package oracle

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"veccmp/internal/errors"
)

// RecordTags are the document tags clang emits in optimization record files.
// Tags outside this list are still accepted as generic mappings; the list
// exists so the expected vocabulary is explicit rather than implied.
var RecordTags = []string{"!Passed", "!Missed", "!Analysis", "!AnalysisFPCommute"}

// vectorizePasses are the pass names whose remarks count as vectorization
// evidence. Remarks from any other pass are ignored.
var vectorizePasses = map[string]bool{
	"loop-vectorize": true,
	"slp-vectorize":  true,
}

// Entry is one remark document from an optimization record file.
type Entry struct {
	Kind     string // document tag without the leading '!', e.g. "Passed"
	Function string `yaml:"Function"`
	Pass     string `yaml:"Pass"`
	Name     string `yaml:"Name"`
}

// RecordSource derives a Verdict from a clang optimization record file
// (-fsave-optimization-record output).
type RecordSource struct {
	Path string
}

func (s *RecordSource) Verdict(ctx context.Context) (Verdict, error) {
	entries, err := ParseRecords(s.Path, RecordTags)
	if err != nil {
		return nil, err
	}
	return VerdictFromEntries(entries), nil
}

// ParseRecords reads a multi-document YAML optimization record file. Each
// document is a mapping tagged with a remark kind; tags lists the expected
// kinds, but any other local tag on a mapping is accepted too. A document
// that does not decode, or whose payload is not a mapping, is fatal:
// a partially parsed record cannot be trusted.
func ParseRecords(path string, tags []string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errors.ParseError{Source: path, Detail: "opening optimization record", Err: err}
	}
	defer f.Close()

	known := make(map[string]bool, len(tags))
	for _, t := range tags {
		known[t] = true
	}

	dec := yaml.NewDecoder(f)
	var entries []Entry
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if err == io.EOF {
				break
			}
			return nil, &errors.ParseError{Source: path, Detail: "malformed record document", Err: err}
		}
		root := &node
		if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
			root = node.Content[0]
		}
		entry, err := decodeEntry(root, known)
		if err != nil {
			return nil, &errors.ParseError{Source: path, Detail: "malformed record document", Err: err}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeEntry(node *yaml.Node, known map[string]bool) (Entry, error) {
	tag := node.Tag
	if node.Kind != yaml.MappingNode {
		return Entry{}, fmt.Errorf("document tagged %q is not a mapping", tag)
	}

	// Re-tag so the decoder treats the remark as a plain mapping; the kind
	// is carried in the Entry instead. Tags outside the known set still
	// decode this way, they just produce a Kind nothing looks for.
	node.Tag = "!!map"
	var entry Entry
	if err := node.Decode(&entry); err != nil {
		return Entry{}, err
	}
	if known[tag] || strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!") {
		entry.Kind = strings.TrimPrefix(tag, "!")
	}
	return entry, nil
}

// VerdictFromEntries folds remark entries into a Verdict. A function counts
// as vectorized if any recognized vectorization-pass remark for it reports
// success; one succeeded site outweighs any number of missed ones.
func VerdictFromEntries(entries []Entry) Verdict {
	verdict := make(Verdict)
	for _, e := range entries {
		if e.Function == "" {
			continue
		}
		if !vectorizePasses[e.Pass] {
			continue
		}
		verdict[e.Function] = verdict[e.Function] || e.Name == "Vectorized"
	}
	return verdict
}
