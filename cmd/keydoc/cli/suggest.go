// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestDistance is the largest edit distance still offered as a
// suggestion. Three catches transpositions and a dropped or extra
// character in names as short as "tags" or "cbor".
const maxSuggestDistance = 3

// closestMatch returns the candidate nearest to unknown, or "" when
// none is within maxSuggestDistance. Ties go to the earlier candidate.
func closestMatch(unknown string, candidates []string) string {
	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range candidates {
		if distance := levenshtein(unknown, candidate); distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	return best
}

// suggestCommand returns the closest subcommand name to unknown, or "".
func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, len(commands))
	for index, command := range commands {
		names[index] = command.Name
	}
	return closestMatch(unknown, names)
}

// suggestFlag finds the first flag in args that flagSet does not define
// and returns the closest defined long flag as "--name", or "".
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var defined []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		defined = append(defined, f.Name)
	})

	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			continue
		}
		name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if flagSet.Lookup(name) != nil {
			continue
		}
		if len(name) == 1 && flagSet.ShorthandLookup(name) != nil {
			continue
		}
		if suggestion := closestMatch(name, defined); suggestion != "" {
			return "--" + suggestion
		}
		return ""
	}
	return ""
}

// UnknownChoice reports a flag value outside its allowed set, such as
// "--from xml", as a validation error. A near miss gets a suggestion:
//
//	--to: unknown format "ymal", did you mean "yaml"? (want one of json, yaml, cbor, diag)
func UnknownChoice(flagName, value string, allowed []string) *ToolError {
	want := strings.Join(allowed, ", ")
	if suggestion := closestMatch(value, allowed); suggestion != "" {
		return Validation("--%s: unknown format %q, did you mean %q? (want one of %s)", flagName, value, suggestion, want)
	}
	return Validation("--%s: unknown format %q (want one of %s)", flagName, value, want)
}

// levenshtein computes the Levenshtein edit distance between two strings.
// This is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to change one string into the other.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// A single row of the distance matrix, updated in place.
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current := make([]int, len(a)+1)
		current[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			deletion := previous[i] + 1
			insertion := current[i-1] + 1
			substitution := previous[i-1] + cost

			current[i] = min(deletion, insertion, substitution)
		}

		previous = current
	}

	return previous[len(a)]
}
