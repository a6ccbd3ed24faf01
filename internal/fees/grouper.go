package fees

import (
	"cloud.google.com/go/civil"

	"github.com/dvloznov/commission-fees/internal/domain"
)

// WeeklyGroups holds every natural cash-out transaction bucketed by user
// and week, in input order. It is built once and only read afterwards.
type WeeklyGroups struct {
	weeks   WeekNumbering
	buckets map[domain.UserID]map[WeekKey][]domain.Transaction
}

// GroupWeekly builds WeeklyGroups from the full transaction list.
// Transactions other than natural cash-out are ignored.
func GroupWeekly(txs []domain.Transaction, weeks WeekNumbering) *WeeklyGroups {
	if weeks == nil {
		weeks = ISOWeeks{}
	}

	groups := &WeeklyGroups{
		weeks:   weeks,
		buckets: make(map[domain.UserID]map[WeekKey][]domain.Transaction),
	}

	for _, tx := range txs {
		if !tx.IsNaturalCashOut() {
			continue
		}

		byWeek, ok := groups.buckets[tx.UserID]
		if !ok {
			byWeek = make(map[WeekKey][]domain.Transaction)
			groups.buckets[tx.UserID] = byWeek
		}

		key := weeks.Week(tx.Date)
		byWeek[key] = append(byWeek[key], tx)
	}

	return groups
}

// Bucket returns the user's transactions in the week containing date.
// The returned slice must not be modified.
func (g *WeeklyGroups) Bucket(userID domain.UserID, date civil.Date) []domain.Transaction {
	if g == nil {
		return nil
	}
	return g.buckets[userID][g.weeks.Week(date)]
}

// Users returns the number of users with at least one bucket.
func (g *WeeklyGroups) Users() int {
	if g == nil {
		return 0
	}
	return len(g.buckets)
}

// Weeks returns the number of (user, week) buckets.
func (g *WeeklyGroups) Weeks() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, byWeek := range g.buckets {
		n += len(byWeek)
	}
	return n
}
