package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/HolmesInc/data-storage/internal/cli/api"
	"github.com/HolmesInc/data-storage/internal/cli/session"
)

// JSON prints v as indented JSON to stdout.
func JSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// RoomTable prints a slice of rooms.
func RoomTable(rooms []api.Room) {
	if len(rooms) == 0 {
		fmt.Println("No rooms found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\tID\tCREATED")
	for _, r := range rooms {
		desc := r.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, desc, r.ID, RelativeTime(r.CreatedAt))
	}
	w.Flush()
}

// Listing prints one tree level: folders first, then files, in the order the
// server returned them.
func Listing(view session.View) {
	if len(view.Folders) == 0 && len(view.Files) == 0 {
		fmt.Println("Empty.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tID\tMODIFIED")
	for _, f := range view.Folders {
		fmt.Fprintf(w, "%s/\t-\t%s\t%s\n", f.Name, f.ID, RelativeTime(f.UpdatedAt))
	}
	for _, f := range view.Files {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, FormatSize(f.Size), f.ID, RelativeTime(f.UpdatedAt))
	}
	w.Flush()
}

// Breadcrumb prints the current position as a path-like trail.
func Breadcrumb(roomName string, crumbs []session.Crumb) {
	parts := make([]string, 0, len(crumbs)+1)
	parts = append(parts, roomName)
	for _, c := range crumbs {
		parts = append(parts, c.Name)
	}
	fmt.Println("/" + strings.Join(parts, "/"))
}

// ShareTable prints a file's share links with their public URLs.
func ShareTable(shares []api.Share, urlFor func(token string) string) {
	if len(shares) == 0 {
		fmt.Println("No shares found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXPIRES\tURL")
	for _, s := range shares {
		expires := "never"
		if s.ExpiresAt != nil {
			expires = s.ExpiresAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, expires, urlFor(s.Token))
	}
	w.Flush()
}

// UserInfo prints user details.
func UserInfo(u api.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	fmt.Fprintf(w, "Name:\t%s %s\n", u.FirstName, u.LastName)
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	w.Flush()
}

// UploadResults prints one line per file in an upload batch.
func UploadResults(results []session.UploadResult) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("  %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Printf("  %s: uploaded as %q (%s)\n", r.Path, r.File.Name, FormatSize(r.File.Size))
	}
}

// FormatSize converts bytes to a human-readable string.
func FormatSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

// RelativeTime formats a timestamp relative to now (e.g. "2h ago", "3d ago").
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
