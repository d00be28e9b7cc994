package service

import (
	"fmt"
	"strings"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

const defaultListLimit = 50

// ListFilter is shared by the list operations. Date selects a single day and
// cannot be combined with FromDate or ToDate.
type ListFilter struct {
	UserID   string
	Date     string
	FromDate string
	ToDate   string
	Limit    int
}

func (f ListFilter) storeFilter() (string, store.Filter, error) {
	userID, err := requireUser(f.UserID)
	if err != nil {
		return "", store.Filter{}, err
	}
	date := strings.TrimSpace(f.Date)
	from := strings.TrimSpace(f.FromDate)
	to := strings.TrimSpace(f.ToDate)
	if date != "" && (from != "" || to != "") {
		return "", store.Filter{}, fmt.Errorf("--date cannot be combined with --from or --to")
	}
	for name, v := range map[string]string{"date": date, "from date": from, "to date": to} {
		if err := validateOptionalDate(name, v); err != nil {
			return "", store.Filter{}, err
		}
	}
	if date != "" {
		from, to = date, date
	}
	if from != "" && to != "" && from > to {
		return "", store.Filter{}, fmt.Errorf("from date %s is after to date %s", from, to)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return userID, store.Filter{FromDate: from, ToDate: to, Limit: limit}, nil
}
