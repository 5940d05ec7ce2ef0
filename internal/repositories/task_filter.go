package repositories

import (
	"fmt"
	"strings"

	"taskman/internal/models"
)

// BuildTaskFilter translates a TaskFilter into SQL conditions over the
// aliased tables "t" (tasks) and "s" (task_statuses). Placeholders are
// numbered from startArg. Absent fields contribute nothing; present fields
// are combined with AND by the caller.
//
// An empty TitleCont is treated as present and matches every title
// (substring-of-empty-string semantics).
func BuildTaskFilter(filter models.TaskFilter, startArg int) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argID := startArg

	if filter.TitleCont != nil {
		conditions = append(conditions, fmt.Sprintf("LOWER(t.title) LIKE $%d", argID))
		args = append(args, "%"+strings.ToLower(*filter.TitleCont)+"%")
		argID++
	}
	if filter.AssigneeID != nil {
		// tasks without an assignee have NULL here and never match
		conditions = append(conditions, fmt.Sprintf("t.assignee_id = $%d", argID))
		args = append(args, *filter.AssigneeID)
		argID++
	}
	if filter.StatusSlug != nil {
		conditions = append(conditions, fmt.Sprintf("s.slug = $%d", argID))
		args = append(args, *filter.StatusSlug)
		argID++
	}
	if filter.LabelID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM task_labels tl WHERE tl.task_id = t.id AND tl.label_id = $%d)", argID))
		args = append(args, *filter.LabelID)
		argID++
	}
	return conditions, args
}
