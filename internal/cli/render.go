package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/calvinalkan/shelflife/internal/inventory"
)

const (
	msgNoItems  = "No items yet."
	msgNoMatch  = "No items match your search criteria."
	notesIndent = "    "
)

// presenter formats items for the terminal. Styles come from a renderer
// bound to the output writer, so pipes and tests get plain text.
type presenter struct {
	tier  map[inventory.Status]lipgloss.Style
	muted lipgloss.Style
	bold  lipgloss.Style
}

func newPresenter(w io.Writer) *presenter {
	r := lipgloss.NewRenderer(w)

	return &presenter{
		tier: map[inventory.Status]lipgloss.Style{
			inventory.StatusExpired:      r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			inventory.StatusExpiringSoon: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			inventory.StatusSafe:         r.NewStyle().Foreground(lipgloss.Color("10")),
		},
		muted: r.NewStyle().Faint(true),
		bold:  r.NewStyle().Bold(true),
	}
}

// daysPhrase describes how far an expiry is from today.
func daysPhrase(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("Expired %d days ago", -days)
	case days == 0:
		return "Expires today"
	default:
		return fmt.Sprintf("Expires in %d days", days)
	}
}

// countsLine is the one-line tier summary under a listing.
func countsLine(c inventory.StatusCounts) string {
	return fmt.Sprintf("Expired: %d  Expiring Soon: %d  Safe: %d", c.Expired, c.ExpiringSoon, c.Safe)
}

// row renders one item, plus an indented notes line when it has notes:
//
//	01J0ABCDEF12 [Expiring Soon] Milk - Expires in 5 days (qty: 2, added: Jun 10, 2024)
func (p *presenter) row(item *inventory.Item, today inventory.Date) string {
	status := inventory.Classify(item, today)
	days := inventory.DaysUntilExpiry(item, today)

	var details []string
	if q := item.QuantityString(); q != "" {
		details = append(details, "qty: "+q)
	}

	details = append(details, "added: "+item.AddedDate.Display())

	var b strings.Builder

	b.WriteString(p.muted.Render(item.ID))
	b.WriteString(" ")
	b.WriteString(p.tier[status].Render("[" + status.Label() + "]"))
	b.WriteString(" ")
	b.WriteString(p.bold.Render(item.Name))
	b.WriteString(" - ")
	b.WriteString(daysPhrase(days))
	b.WriteString(" (" + strings.Join(details, ", ") + ")")

	if item.Notes != "" {
		b.WriteString("\n")
		b.WriteString(notesIndent)
		b.WriteString(p.muted.Render(item.Notes))
	}

	return b.String()
}

// detail renders every field of one item as key: value lines.
func (p *presenter) detail(item *inventory.Item, today inventory.Date) []string {
	status := inventory.Classify(item, today)
	days := inventory.DaysUntilExpiry(item, today)

	qty := item.QuantityString()
	if qty == "" {
		qty = "-"
	}

	notes := item.Notes
	if notes == "" {
		notes = "-"
	}

	return []string{
		"id: " + item.ID,
		"name: " + p.bold.Render(item.Name),
		fmt.Sprintf("expires: %s (%s)", item.ExpiryDate, item.ExpiryDate.Display()),
		fmt.Sprintf("added: %s (%s)", item.AddedDate, item.AddedDate.Display()),
		"quantity: " + qty,
		"notes: " + notes,
		fmt.Sprintf("status: %s, %s", p.tier[status].Render(status.Label()), daysPhrase(days)),
	}
}
