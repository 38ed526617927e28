package cmd

import (
	"strings"
	"testing"
)

func TestConfirmAcceptsYes(t *testing.T) {
	for _, input := range []string{"y\n", "Y\n", "yes\n", "YES\n", "  yes  \n"} {
		if !confirm(strings.NewReader(input), "Delete?") {
			t.Errorf("expected %q to confirm", input)
		}
	}
}

func TestConfirmDefaultsToNo(t *testing.T) {
	for _, input := range []string{"\n", "n\n", "no\n", "nope\n", "q\n", ""} {
		if confirm(strings.NewReader(input), "Delete?") {
			t.Errorf("expected %q to decline", input)
		}
	}
}

func TestDeleteCommandsCarryForceFlag(t *testing.T) {
	if rmCmd.Flags().Lookup("force") == nil {
		t.Error("rm must expose --force to skip confirmation")
	}
	if rmroomCmd.Flags().Lookup("force") == nil {
		t.Error("rmroom must expose --force to skip confirmation")
	}
	if f := rmCmd.Flags().ShorthandLookup("f"); f == nil || f.Name != "force" {
		t.Error("rm -f must be shorthand for --force")
	}
}
