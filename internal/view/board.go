package view

import (
	"sort"

	"github.com/solodesk/solodesk/internal/model"
)

type BoardColumn struct {
	Status model.TaskStatus    `json:"status"`
	Tasks  []*model.TaskRecord `json:"tasks"`
}

// Board arranges tasks into one column per status in the fixed order Todo,
// In Progress, Done, Postponed. Cards inside a column follow the manual sort
// order, creation time breaking ties.
func Board(tasks []*model.TaskRecord) []BoardColumn {
	byStatus := map[model.TaskStatus][]*model.TaskRecord{}
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}
	out := make([]BoardColumn, 0, len(model.BoardColumns))
	for _, status := range model.BoardColumns {
		col := byStatus[status]
		sort.SliceStable(col, func(i, j int) bool {
			if col[i].SortOrder != col[j].SortOrder {
				return col[i].SortOrder < col[j].SortOrder
			}
			return col[i].CreatedAt.Before(col[j].CreatedAt)
		})
		if col == nil {
			col = []*model.TaskRecord{}
		}
		out = append(out, BoardColumn{Status: status, Tasks: col})
	}
	return out
}
