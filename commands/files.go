package commands

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vernacular-lang/vernacular/interp"
)

func (r *Runtime) filePatterns() []pattern {
	return []pattern{
		cmd(`(?:check if |does )?(?:the )?file (\S+) exists?`,
			`check if the file NAME exists`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				_, err := os.Stat(m[1])
				exists := err == nil
				sc.Assign("result", exists)
				if exists {
					r.printf("Yes, %s exists", m[1])
				} else {
					r.printf("No, %s does not exist", m[1])
				}
				return interp.Normal, nil
			}),
		cmd(`(?:save|write) (["'].*["']|\w+) to (?:the )?file (\S+)`,
			`save "TEXT" to the file NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				content := stringOperand(sc, m[1])
				if err := os.WriteFile(m[2], []byte(content+"\n"), 0o644); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not write %s: %v", m[2], err)
				}
				r.printf("Saved to %s", m[2])
				return interp.Normal, nil
			}),
		cmd(`(?:append|add) (["'].*["']|\w+) to (?:the )?file (\S+)`,
			`append "TEXT" to the file NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				f, err := os.OpenFile(m[2], os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not open %s: %v", m[2], err)
				}
				defer f.Close()
				if _, err := f.WriteString(stringOperand(sc, m[1]) + "\n"); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not append to %s: %v", m[2], err)
				}
				r.printf("Appended to %s", m[2])
				return interp.Normal, nil
			}),
		cmd(`read (?:the )?file (\S+)`,
			`read the file NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				data, err := os.ReadFile(m[1])
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not read %s: %v", m[1], err)
				}
				content := strings.TrimRight(string(data), "\n")
				sc.Assign("file_contents", content)
				r.printf("%s", content)
				return interp.Normal, nil
			}),
		cmd(`delete (?:the )?file (\S+)`,
			`delete the file NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if err := os.Remove(m[1]); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not delete %s: %v", m[1], err)
				}
				r.printf("Deleted %s", m[1])
				return interp.Normal, nil
			}),
		cmd(`copy (?:the )?file (\S+) to (\S+)`,
			`copy the file SRC to DST`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				data, err := os.ReadFile(m[1])
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not read %s: %v", m[1], err)
				}
				if err := os.WriteFile(m[2], data, 0o644); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not write %s: %v", m[2], err)
				}
				r.printf("Copied %s to %s", m[1], m[2])
				return interp.Normal, nil
			}),
		cmd(`create a csv file (\S+) with headers (.+)`,
			`create a csv file NAME with headers A, B, C`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				headers := splitFields(m[2])
				f, err := os.Create(m[1])
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not create %s: %v", m[1], err)
				}
				defer f.Close()
				w := csv.NewWriter(f)
				if err := w.Write(headers); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not write %s: %v", m[1], err)
				}
				w.Flush()
				if err := w.Error(); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not write %s: %v", m[1], err)
				}
				r.printf("Created %s with %d column(s)", m[1], len(headers))
				return interp.Normal, nil
			}),
		cmd(`add (?:the )?row (.+) to (?:the )?csv (?:file )?(\S+)`,
			`add row A, B, C to csv NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				row := make([]string, 0)
				for _, field := range strings.Split(m[1], ",") {
					row = append(row, stringOperand(sc, field))
				}
				f, err := os.OpenFile(m[2], os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not open %s: %v", m[2], err)
				}
				defer f.Close()
				w := csv.NewWriter(f)
				if err := w.Write(row); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not write %s: %v", m[2], err)
				}
				w.Flush()
				if err := w.Error(); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not write %s: %v", m[2], err)
				}
				r.printf("Added a row to %s", m[2])
				return interp.Normal, nil
			}),
		cmd(`read (?:the )?csv file (\S+)`,
			`read the csv file NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				f, err := os.Open(m[1])
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not read %s: %v", m[1], err)
				}
				defer f.Close()
				rows, err := csv.NewReader(f).ReadAll()
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not parse %s: %v", m[1], err)
				}
				for _, row := range rows {
					r.printf("%s", strings.Join(row, " | "))
				}
				sc.Assign("result", len(rows))
				return interp.Normal, nil
			}),
		cmd(`save list (\w+) to (?:the )?json file (\S+)`,
			`save list NAME to json file FILE`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				items, err := listOperand(sc, m[1])
				if err != nil {
					return interp.Normal, err
				}
				data, err := json.MarshalIndent(items, "", "  ")
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not encode %s: %v", m[1], err)
				}
				if err := os.WriteFile(m[2], data, 0o644); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not write %s: %v", m[2], err)
				}
				r.printf("Saved %s to %s", m[1], m[2])
				return interp.Normal, nil
			}),
		cmd(`load (?:the )?json file (\S+) into (?:list )?(\w+)`,
			`load json file FILE into list NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				data, err := os.ReadFile(m[1])
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not read %s: %v", m[1], err)
				}
				var items []any
				if err := json.Unmarshal(data, &items); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "%s is not a json list: %v", m[1], err)
				}
				sc.Assign(m[2], items)
				r.printf("Loaded %d item(s) into %s", len(items), m[2])
				return interp.Normal, nil
			}),
		cmd(`save list (\w+) to (?:the )?ya?ml file (\S+)`,
			`save list NAME to yaml file FILE`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				items, err := listOperand(sc, m[1])
				if err != nil {
					return interp.Normal, err
				}
				data, err := yaml.Marshal(items)
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not encode %s: %v", m[1], err)
				}
				if err := os.WriteFile(m[2], data, 0o644); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not write %s: %v", m[2], err)
				}
				r.printf("Saved %s to %s", m[1], m[2])
				return interp.Normal, nil
			}),
		cmd(`load (?:the )?ya?ml file (\S+) into (?:list )?(\w+)`,
			`load yaml file FILE into list NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				data, err := os.ReadFile(m[1])
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not read %s: %v", m[1], err)
				}
				var items []any
				if err := yaml.Unmarshal(data, &items); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "%s is not a yaml list: %v", m[1], err)
				}
				sc.Assign(m[2], items)
				r.printf("Loaded %d item(s) into %s", len(items), m[2])
				return interp.Normal, nil
			}),
	}
}

func splitFields(raw string) []string {
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
