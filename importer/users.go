package importer

import (
	"fmt"
	"io"

	"github.com/yeremiapane/resteasy/utils"
)

const (
	ActionAdd = "add"
	ActionDel = "del"
)

// UserStats counts the rows of a user file.
type UserStats struct {
	Done    int
	Skipped int
}

// ImportUsers applies action to every "username,password,fullname,phone"
// row of r. A row that fails is logged and skipped; the rest still run.
func (im *Importer) ImportUsers(r io.Reader, action string) (UserStats, error) {
	var stats UserStats
	if action != ActionAdd && action != ActionDel {
		return stats, fmt.Errorf("unknown action %q, want %s or %s", action, ActionAdd, ActionDel)
	}

	records, err := readRecords(r, ',')
	if err != nil {
		return stats, err
	}
	for _, rec := range records {
		if err := rec.expect(4); err != nil {
			utils.ErrorLogger.Printf("Skipping user row: %v", err)
			stats.Skipped++
			continue
		}
		username, password, fullname, phone := rec.fields[0], rec.fields[1], rec.fields[2], rec.fields[3]

		if action == ActionAdd {
			_, err = im.Accounts.AddUser(username, password, fullname, phone)
		} else {
			err = im.Accounts.DeleteUser(username)
		}
		if err != nil {
			utils.ErrorLogger.Printf("Failed to %s user %q: %v.  Ignored.", action, username, err)
			stats.Skipped++
			continue
		}
		utils.InfoLogger.Printf("User %q: %s done", username, action)
		stats.Done++
	}
	return stats, nil
}
