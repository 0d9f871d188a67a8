package info

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
)

// Render writes the report as styled terminal sections. Callers are
// expected to have disabled pterm's color output when w is not a
// terminal.
func Render(w io.Writer, report *Report) error {
	section := pterm.DefaultSection.WithWriter(w)
	table := pterm.DefaultTable.WithWriter(w).WithHasHeader()

	section.Printfln("Document (format %s, %d entities)", report.FormatVersion, report.TotalEntities)

	section.WithLevel(2).Println("Owners")
	ownerRows := pterm.TableData{{"Owner", "Entities"}}
	for _, o := range report.Owners {
		ownerRows = append(ownerRows, []string{strconv.FormatInt(o.OwnerID, 10), strconv.Itoa(o.Count)})
	}
	if err := table.WithData(ownerRows).Render(); err != nil {
		return err
	}

	section.WithLevel(2).Println("Locks")
	fmt.Fprintf(w, "Key locks: %d\n", report.KeyLocks)
	lockRows := pterm.TableData{{"Code", "Locks"}}
	for _, c := range report.CodeLocks {
		lockRows = append(lockRows, []string{c.Code, strconv.Itoa(c.Count)})
	}
	if err := table.WithData(lockRows).Render(); err != nil {
		return err
	}

	section.WithLevel(2).Println("Entity types")
	typeRows := pterm.TableData{{"Type", "Entities"}}
	for _, tc := range report.Types {
		typeRows = append(typeRows, []string{tc.TypeID, strconv.Itoa(tc.Count)})
	}
	return table.WithData(typeRows).Render()
}

// RenderJSON writes the report as indented JSON, for scripting.
func RenderJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
