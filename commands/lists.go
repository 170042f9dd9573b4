package commands

import (
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/vernacular-lang/vernacular/interp"
)

// ResolveList resolves a for-each header's list name. Named lists are scope
// variables holding []any; "list" and "items" refer to the anonymous
// current list.
func (r *Runtime) ResolveList(name string, sc *interp.Scopes) ([]any, error) {
	switch strings.ToLower(name) {
	case "list", "items":
		if r.currentList != nil {
			return r.currentList, nil
		}
	}
	return listOperand(sc, name)
}

func (r *Runtime) listPatterns() []pattern {
	return []pattern{
		cmd(`(?:create|make) (?:a |an )?(?:new )?list called (\w+)(?: with (.+))?`,
			`create a list called NAME with ITEMS`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				items := parseItems(sc, m[2])
				sc.Assign(m[1], items)
				r.printf("Created list %q with %d item(s)", m[1], len(items))
				return interp.Normal, nil
			}),
		cmd(`(?:create|make) (?:a |an )?(?:new )?(?:empty )?list`,
			`create a list`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				r.currentList = []any{}
				r.printf("Created a new list")
				return interp.Normal, nil
			}),
		cmd(`add (.+) to list (\w+)`,
			`add ITEM to list NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				items, err := listOperand(sc, m[2])
				if err != nil {
					return interp.Normal, err
				}
				item := resolveToken(sc, m[1])
				sc.Assign(m[2], append(items, item))
				r.printf("Added %s to %s", formatValue(item), m[2])
				return interp.Normal, nil
			}),
		cmd(`add (.+) to the list`,
			`add ITEM to the list`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				item := resolveToken(sc, m[1])
				r.currentList = append(r.currentList, item)
				r.printf("Added %s to the list", formatValue(item))
				return interp.Normal, nil
			}),
		cmd(`remove (.+) from (?:list )?(\w+)`,
			`remove ITEM from list NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				items, err := listOperand(sc, m[2])
				if err != nil {
					return interp.Normal, err
				}
				target := formatValue(resolveToken(sc, m[1]))
				for i, item := range items {
					if formatValue(item) == target {
						sc.Assign(m[2], append(items[:i:i], items[i+1:]...))
						r.printf("Removed %s from %s", target, m[2])
						return interp.Normal, nil
					}
				}
				r.printf("%s is not in %s", target, m[2])
				return interp.Normal, nil
			}),
		cmd(`(?:show|display|print) (?:the )?list (\w+)`,
			`show list NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				items, err := listOperand(sc, m[1])
				if err != nil {
					return interp.Normal, err
				}
				r.printf("%s: %s", m[1], formatValue(items))
				return interp.Normal, nil
			}),
		cmd(`(?:show|display) the list`,
			`show the list`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				r.printf("The list: %s", formatValue(r.currentList))
				return interp.Normal, nil
			}),
		cmd(`sort (?:the )?list (\w+)`,
			`sort list NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				items, err := listOperand(sc, m[1])
				if err != nil {
					return interp.Normal, err
				}
				sorted := append([]any(nil), items...)
				sortItems(sorted)
				sc.Assign(m[1], sorted)
				r.printf("Sorted %s: %s", m[1], formatValue(sorted))
				return interp.Normal, nil
			}),
		cmd(`reverse (?:the )?list (\w+)`,
			`reverse list NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				items, err := listOperand(sc, m[1])
				if err != nil {
					return interp.Normal, err
				}
				reversed := make([]any, len(items))
				for i, item := range items {
					reversed[len(items)-1-i] = item
				}
				sc.Assign(m[1], reversed)
				r.printf("Reversed %s: %s", m[1], formatValue(reversed))
				return interp.Normal, nil
			}),
		cmd(`count (?:the )?items in (?:list )?(\w+)`,
			`count the items in NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				items, err := r.ResolveList(m[1], sc)
				if err != nil {
					return interp.Normal, err
				}
				r.printf("%s has %d item(s)", m[1], len(items))
				return interp.Normal, nil
			}),
		cmd(`clear (?:the )?list (\w+)`,
			`clear list NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if _, err := listOperand(sc, m[1]); err != nil {
					return interp.Normal, err
				}
				sc.Assign(m[1], []any{})
				r.printf("Cleared %s", m[1])
				return interp.Normal, nil
			}),
	}
}

// parseItems splits a comma-separated item spec into values.
func parseItems(sc *interp.Scopes, raw string) []any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []any{}
	}
	parts := strings.Split(raw, ",")
	items := make([]any, 0, len(parts))
	for _, p := range parts {
		items = append(items, resolveToken(sc, p))
	}
	return items
}

// sortItems orders numerically when every element is a number, textually
// otherwise.
func sortItems(items []any) {
	allNumeric := true
	for _, item := range items {
		if _, err := cast.ToFloat64E(item); err != nil {
			allNumeric = false
			break
		}
	}
	if allNumeric {
		sort.Slice(items, func(i, j int) bool {
			return cast.ToFloat64(items[i]) < cast.ToFloat64(items[j])
		})
		return
	}
	sort.Slice(items, func(i, j int) bool {
		return formatValue(items[i]) < formatValue(items[j])
	})
}
