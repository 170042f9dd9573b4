package commands

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vernacular-lang/vernacular/interp"
)

// sessionState is everything a save captures: global variables, the
// anonymous list, and the flat functions. Block functions are source
// constructs and reload with the script that defined them.
type sessionState struct {
	Variables map[string]any    `json:"variables" yaml:"variables"`
	List      []any             `json:"list,omitempty" yaml:"list,omitempty"`
	Functions map[string]string `json:"functions,omitempty" yaml:"functions,omitempty"`
}

func (r *Runtime) sessionPatterns() []pattern {
	return []pattern{
		cmd(`save (?:the |my )?session (?:to|as) (\S+)`,
			`save session to FILE`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if err := r.saveSession(sc, m[1]); err != nil {
					return interp.Normal, err
				}
				r.printf("Session saved to %s", m[1])
				return interp.Normal, nil
			}),
		cmd(`load (?:the |my )?session (?:from )?(\S+)`,
			`load session from FILE`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if err := r.loadSession(sc, m[1]); err != nil {
					return interp.Normal, err
				}
				r.printf("Session loaded from %s", m[1])
				return interp.Normal, nil
			}),
		cmd(`save (?:data|variables) to (\S+\.xml)`,
			`save data to FILE.xml`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if err := r.saveXML(sc, m[1]); err != nil {
					return interp.Normal, err
				}
				r.printf("Data saved to %s", m[1])
				return interp.Normal, nil
			}),
		cmd(`load (?:data|variables) from (\S+\.xml)`,
			`load data from FILE.xml`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if err := r.loadXML(sc, m[1]); err != nil {
					return interp.Normal, err
				}
				r.printf("Data loaded from %s", m[1])
				return interp.Normal, nil
			}),
		cmd(`(?:reset|clear) (?:the |my )?(?:session|everything)`,
			`reset the session`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				sc.ReplaceGlobals(nil)
				r.currentList = nil
				r.flatFuncs = make(map[string]string)
				r.printf("Session cleared")
				return interp.Normal, nil
			}),
	}
}

// saveSession writes the state as JSON or YAML, picked by file extension.
func (r *Runtime) saveSession(sc *interp.Scopes, path string) error {
	state := sessionState{
		Variables: sc.Globals(),
		List:      r.currentList,
		Functions: r.flatFuncs,
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(state)
	default:
		data, err = json.MarshalIndent(state, "", "  ")
	}
	if err != nil {
		return interp.NewEvaluationError(0, "could not encode the session: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return interp.NewEvaluationError(0, "could not write %s: %v", path, err)
	}
	return nil
}

func (r *Runtime) loadSession(sc *interp.Scopes, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return interp.NewEvaluationError(0, "could not read %s: %v", path, err)
	}

	var state sessionState
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &state)
	default:
		err = json.Unmarshal(data, &state)
	}
	if err != nil {
		return interp.NewEvaluationError(0, "%s is not a saved session: %v", path, err)
	}

	sc.ReplaceGlobals(state.Variables)
	r.currentList = state.List
	if state.Functions != nil {
		r.flatFuncs = state.Functions
	}
	return nil
}

// xmlData is the XML save format: scalar variables carry a type attribute
// so they reload as the value they were, lists keep their items in order.
type xmlData struct {
	XMLName   xml.Name      `xml:"vernacular_data"`
	Variables []xmlVariable `xml:"variables>variable"`
	Lists     []xmlList     `xml:"lists>list"`
}

type xmlVariable struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type xmlList struct {
	Name  string   `xml:"name,attr"`
	Items []string `xml:"item"`
}

// saveXML writes every global binding: scalars under <variables>, list
// values under <lists>. Names are sorted so the output is stable.
func (r *Runtime) saveXML(sc *interp.Scopes, path string) error {
	globals := sc.Globals()
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}
	sort.Strings(names)

	var doc xmlData
	for _, name := range names {
		switch v := globals[name].(type) {
		case []any:
			list := xmlList{Name: name}
			for _, item := range v {
				list.Items = append(list.Items, formatValue(item))
			}
			doc.Lists = append(doc.Lists, list)
		default:
			doc.Variables = append(doc.Variables, xmlVariable{
				Name:  name,
				Type:  xmlTypeName(v),
				Value: formatValue(v),
			})
		}
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return interp.NewEvaluationError(0, "could not encode the data: %v", err)
	}
	data = append([]byte(xml.Header), data...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return interp.NewEvaluationError(0, "could not write %s: %v", path, err)
	}
	return nil
}

// loadXML replaces all current state with the file's contents, the same
// clean-slate behavior as loading a session.
func (r *Runtime) loadXML(sc *interp.Scopes, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return interp.NewEvaluationError(0, "could not read %s: %v", path, err)
	}

	var doc xmlData
	if err := xml.Unmarshal(data, &doc); err != nil {
		return interp.NewEvaluationError(0, "%s is not a saved data file: %v", path, err)
	}

	vars := make(map[string]any, len(doc.Variables)+len(doc.Lists))
	for _, v := range doc.Variables {
		vars[v.Name] = xmlValue(v.Type, v.Value)
	}
	for _, l := range doc.Lists {
		items := make([]any, len(l.Items))
		for i, item := range l.Items {
			items[i] = parseLiteral(item)
		}
		vars[l.Name] = items
	}

	sc.ReplaceGlobals(vars)
	r.currentList = nil
	return nil
}

func xmlTypeName(v any) string {
	switch v.(type) {
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	default:
		return "text"
	}
}

func xmlValue(typeName, raw string) any {
	switch typeName {
	case "int":
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	case "float":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case "bool":
		return strings.EqualFold(raw, "true")
	}
	return raw
}
