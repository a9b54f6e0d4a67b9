package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

func stringFilters(db, query *gorm.DB, setFields []string, name, manager, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if manager != "" {
		query = query.Where("manager LIKE ?", fmt.Sprintf("%%%s%%", manager))
	} else if slices.Contains(setFields, "Manager") {
		query = query.Where("manager = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("manager LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}
