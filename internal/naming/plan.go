package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// PlanItem is the predicted outcome for one file of a batch.
type PlanItem struct {
	Seq     int
	OldPath string
	NewPath string
	OldName string
	NewName string
	Warning string // "" | "conflict: duplicate name" | "target exists" | invalid reason
}

// Plan is a dry computation of a batch's target names. It only warns;
// the renamer does not consult it.
type Plan struct {
	Mode         Mode
	Items        []PlanItem
	Invalid      []string
	Duplicate    []string
	TargetExists []string
}

// BuildPlan names every file in order with namer and flags targets that
// collide within the batch or with a file already on fs.
func BuildPlan(fs afero.Fs, files []string, namer Namer) Plan {
	p := Plan{Mode: namer.Mode, Items: make([]PlanItem, 0, len(files))}

	dupCount := map[string]int{}
	for i, oldPath := range files {
		newPath := namer.Target(oldPath, i+1)
		p.Items = append(p.Items, PlanItem{
			Seq:     i + 1,
			OldPath: oldPath,
			NewPath: newPath,
			OldName: filepath.Base(oldPath),
			NewName: filepath.Base(newPath),
		})
		dupCount[newPath]++
	}

	position := make(map[string]int, len(files))
	for i, f := range files {
		position[f] = i
	}

	for i := range p.Items {
		it := &p.Items[i]
		line := fmt.Sprintf("%s → %s", it.OldName, it.NewName)

		if dupCount[it.NewPath] > 1 {
			it.Warning = "conflict: duplicate name"
			p.Duplicate = append(p.Duplicate, line)
			continue
		}
		if reason := InvalidReason(it.NewName); reason != "" {
			it.Warning = reason
			p.Invalid = append(p.Invalid, fmt.Sprintf("%s (%s)", line, reason))
			continue
		}
		// earlier files of the batch have already been moved out of the way
		if at, inBatch := position[it.NewPath]; !inBatch || at > i {
			if ok, _ := afero.Exists(fs, it.NewPath); ok {
				it.Warning = "target exists"
				p.TargetExists = append(p.TargetExists, line)
			}
		}
	}
	return p
}

// Clean reports whether no item carries a warning.
func (p Plan) Clean() bool {
	return len(p.Invalid) == 0 && len(p.Duplicate) == 0 && len(p.TargetExists) == 0
}

const summaryListLimit = 20

// Summary renders the plan as the text of a confirmation prompt.
func (p Plan) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are about to rename %d file(s) using %s naming.\n\n", len(p.Items), p.Mode.Label())

	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		b.WriteString(title + ":\n")
		for _, s := range firstN(lines, summaryListLimit) {
			b.WriteString(" - " + s + "\n")
		}
		if len(lines) > summaryListLimit {
			fmt.Fprintf(&b, " ... and %d more\n", len(lines)-summaryListLimit)
		}
		b.WriteString("\n")
	}
	section("Names that may not be valid on every platform", p.Invalid)
	section("Duplicate names (later files replace earlier ones)", p.Duplicate)
	section("Targets that already exist and will be replaced", p.TargetExists)

	b.WriteString("Proceed?")
	return b.String()
}

func firstN[T any](in []T, n int) []T {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
