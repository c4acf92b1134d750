package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/domain"
)

// FormatContactList renders people as a table.
func FormatContactList(people []*domain.Person, now time.Time) string {
	if len(people) == 0 {
		return Dim("No contacts yet. Add one with 'rapport contact add' or run 'rapport seed'.") + "\n"
	}

	rows := make([][]string, 0, len(people))
	for _, p := range people {
		open := 0
		for _, t := range p.Tasks {
			if t.IsOpen() {
				open++
			}
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			roleAt(p),
			StatusPill(p.RelationshipStatus),
			ReputationScore(p.ReputationScore),
			RelativeDateFrom(p.LastContacted, now),
			fmt.Sprintf("%d", open),
		})
	}
	return RenderTable([]string{"ID", "NAME", "ROLE", "STATUS", "SCORE", "LAST CONTACT", "OPEN TASKS"}, rows)
}

// FormatContactDetail renders one person with every collection.
func FormatContactDetail(p *domain.Person, now time.Time) string {
	var b strings.Builder

	summary := []string{
		Bold(p.Name) + "  " + StatusPill(p.RelationshipStatus),
		Dim(roleAt(p)),
		"",
		fmt.Sprintf("Score      %s/100", ReputationScore(p.ReputationScore)),
		fmt.Sprintf("Last seen  %s (%s)", HumanDate(p.LastContacted), RelativeDateFrom(p.LastContacted, now)),
	}
	if p.Email != "" {
		summary = append(summary, "Email      "+p.Email)
	}
	if p.Phone != "" {
		summary = append(summary, "Phone      "+p.Phone)
	}
	for _, s := range p.SocialProfiles {
		summary = append(summary, fmt.Sprintf("%-10s %s", s.Platform, Dim(s.URL)))
	}
	summary = append(summary, "", Dim("id "+p.ID))
	b.WriteString(RenderBox("contact", strings.Join(summary, "\n")))
	b.WriteString("\n\n")

	b.WriteString(Header("Tasks"))
	b.WriteString("\n")
	if len(p.Tasks) == 0 {
		b.WriteString(Dim("No tasks") + "\n")
	} else {
		rows := make([][]string, 0, len(p.Tasks))
		for _, t := range p.Tasks {
			due := DueDateStyled(t.DueDate, now)
			if !t.IsOpen() {
				due = Dim(HumanDate(t.DueDate))
			}
			rows = append(rows, []string{t.ID, t.Title, PriorityBadge(t.Priority), TaskStatusPill(t.Status), due})
		}
		b.WriteString(RenderTable([]string{"ID", "TITLE", "PRIORITY", "STATUS", "DUE"}, rows))
	}
	b.WriteString("\n")

	b.WriteString(Header("Meetings"))
	b.WriteString("\n")
	if len(p.Meetings) == 0 {
		b.WriteString(Dim("No meetings") + "\n")
	}
	for _, m := range p.Meetings {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n", Dim(HumanDate(m.Date)), Bold(m.Title), SentimentStyle(m.Sentiment).Render(string(m.Sentiment))))
		if m.Summary != "" {
			b.WriteString("  " + m.Summary + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(Header("Finances"))
	b.WriteString("\n")
	if len(p.Finances) == 0 {
		b.WriteString(Dim("No finance records") + "\n")
	} else {
		rows := make([][]string, 0, len(p.Finances))
		for _, f := range p.Finances {
			rows = append(rows, []string{f.ID, HumanDate(f.Date), string(f.Type), Money(f.Amount, f.Currency), f.Description})
		}
		b.WriteString(RenderTable([]string{"ID", "DATE", "TYPE", "AMOUNT", "DESCRIPTION"}, rows))
	}
	b.WriteString("\n")

	b.WriteString(Header("Timeline"))
	b.WriteString("\n")
	if len(p.Timeline) == 0 {
		b.WriteString(Dim("Nothing yet") + "\n")
	}
	for _, e := range p.Timeline {
		b.WriteString(fmt.Sprintf("%s  %-8s %s\n", Dim(HumanDate(e.Date)), StyleBlue.Render(string(e.Type)), e.Description))
	}
	return b.String()
}

// FormatTaskCreated confirms a new task.
func FormatTaskCreated(p *domain.Person, t domain.Task, now time.Time) string {
	return fmt.Sprintf("%s Assigned %s to %s (due %s, %s priority)\n",
		StyleGreen.Render("✔"), Bold(t.Title), p.Name, RelativeDateFrom(t.DueDate, now), t.Priority)
}

func roleAt(p *domain.Person) string {
	switch {
	case p.Role != "" && p.Company != "":
		return p.Role + " at " + p.Company
	case p.Role != "":
		return p.Role
	default:
		return p.Company
	}
}
