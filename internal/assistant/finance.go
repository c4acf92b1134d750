package assistant

import (
	"fmt"

	"github.com/alexanderramin/rapport/internal/domain"
)

// Ledger totals a person's finance records by type.
type Ledger struct {
	Paid     float64
	Received float64
	Owed     float64
}

// Net is received minus paid plus owed.
func (l Ledger) Net() float64 {
	return l.Received - l.Paid + l.Owed
}

func TotalFinances(records []domain.Finance) Ledger {
	var l Ledger
	for _, f := range records {
		switch f.Type {
		case domain.FinancePaid:
			l.Paid += f.Amount
		case domain.FinanceReceived:
			l.Received += f.Amount
		case domain.FinanceOwed:
			l.Owed += f.Amount
		}
	}
	return l
}

// trackFinances reports totals and Finances[0], the most recent record.
func (e *LocalEngine) trackFinances(req request) Response {
	p := req.person
	if len(p.Finances) == 0 {
		return Response{
			Message:          fmt.Sprintf("No financial transactions have been recorded with %s. Would you like to create a new transaction record?", p.Name),
			Sentiment:        domain.SentimentNeutral,
			Confidence:       85,
			SuggestedActions: []string{"Record new payment", "Create invoice", "Set up payment reminder"},
		}
	}

	l := TotalFinances(p.Finances)
	net := l.Net()
	last := p.Finances[0]
	lastDate := last.Date.Format(domain.DateLayout)

	closing := "All financial transactions appear to be in order. No overdue payments detected."
	if l.Owed > 0 {
		closing = fmt.Sprintf("There is %s outstanding. Consider sending a payment reminder.", money(l.Owed))
	}

	msg := fmt.Sprintf("Financial summary for %s:\n\nTotal paid: %s\nTotal received: %s\nOutstanding: %s\nNet balance: %s\n\nLast transaction: %s (%s) on %s\n\n%s",
		p.Name, money(l.Paid), money(l.Received), money(l.Owed), money(net),
		money(last.Amount), last.Description, lastDate, closing)

	sentiment := domain.SentimentNeutral
	if net >= 0 {
		sentiment = domain.SentimentPositive
	}

	return Response{
		Message:          msg,
		Sentiment:        sentiment,
		Confidence:       94,
		Entities:         []Entity{{Name: money(net), Type: EntityAmount}, {Name: lastDate, Type: EntityDate}},
		TimeEstimate:     "Financial review recommended quarterly",
		SuggestedActions: []string{"View all financial transactions", "Record new payment", "Generate financial report"},
	}
}
