package quiz

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed banks/*.yaml
var bankFS embed.FS

//go:embed bank.schema.json
var bankSchema []byte

// Subject identifies a question bank.
type Subject string

const (
	SubjectMath       Subject = "math"
	SubjectScience    Subject = "science"
	SubjectEnglish    Subject = "english"
	SubjectLifeSkills Subject = "life-skills"
)

// Subjects lists every subject in menu order.
var Subjects = []Subject{SubjectMath, SubjectScience, SubjectEnglish, SubjectLifeSkills}

// Question is one multiple-choice question. Read-only.
type Question struct {
	ID          int      `yaml:"id"`
	Prompt      string   `yaml:"prompt"`
	Options     []string `yaml:"options"`
	Correct     int      `yaml:"correct"`
	Explanation string   `yaml:"explanation"`
	Difficulty  string   `yaml:"difficulty"`
}

// Verdicts holds the closing remarks shown on the summary, by result band.
type Verdicts struct {
	Perfect string `yaml:"perfect"`
	Strong  string `yaml:"strong"`
	Good    string `yaml:"good"`
	Keep    string `yaml:"keep"`
}

// Bank is the fixed question list of one subject.
type Bank struct {
	Subject   Subject    `yaml:"subject"`
	Title     string     `yaml:"title"`
	Topic     string     `yaml:"topic"`
	Verdicts  Verdicts   `yaml:"verdicts"`
	Questions []Question `yaml:"questions"`
}

// Banks holds the question banks by subject. Read-only once loaded.
type Banks struct {
	bySubject map[Subject]*Bank
}

// LoadBanks parses and validates the embedded banks.
func LoadBanks() (*Banks, error) {
	list, err := loadBanks()
	if err != nil {
		return nil, err
	}
	return NewBanks(list...), nil
}

// NewBanks indexes banks by subject; a later bank replaces an earlier one
// with the same subject.
func NewBanks(banks ...*Bank) *Banks {
	m := make(map[Subject]*Bank, len(banks))
	for _, b := range banks {
		m[b.Subject] = b
	}
	return &Banks{bySubject: m}
}

// MustLoadBanks is LoadBanks for callers that cannot recover; the
// embedded banks are validated by tests.
func MustLoadBanks() *Banks {
	b, err := LoadBanks()
	if err != nil {
		panic(err)
	}
	return b
}

// Get returns the bank for subject.
func (b *Banks) Get(subject Subject) (*Bank, error) {
	if b == nil {
		return nil, fmt.Errorf("no question banks loaded")
	}
	bank, ok := b.bySubject[subject]
	if !ok {
		return nil, fmt.Errorf("unknown subject %q", subject)
	}
	return bank, nil
}

func loadBanks() ([]*Bank, error) {
	schema, err := compileBankSchema()
	if err != nil {
		return nil, err
	}

	files, err := bankFS.ReadDir("banks")
	if err != nil {
		return nil, fmt.Errorf("read banks: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	out := make([]*Bank, 0, len(files))
	for _, f := range files {
		raw, err := bankFS.ReadFile(path.Join("banks", f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name(), err)
		}
		b, err := ParseBank(schema, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}
		out = append(out, b)
	}
	return out, nil
}

func compileBankSchema() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal(bankSchema, &def); err != nil {
		return nil, fmt.Errorf("parse bank schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://quiz-bank.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	return compiled, nil
}

// ParseBank decodes a YAML bank, validates its shape against schema and
// checks that every correct index points at an option.
func ParseBank(schema *jsonschema.Schema, raw []byte) (*Bank, error) {
	// The validator wants JSON-typed values; round-trip the YAML tree
	// through encoding/json to get them.
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	js, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	var doc any
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var b Bank
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	for i, q := range b.Questions {
		if q.Correct >= len(q.Options) {
			return nil, fmt.Errorf("question %d: correct index %d out of range", i+1, q.Correct)
		}
	}
	return &b, nil
}
