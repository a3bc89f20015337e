package reset

import (
	"roomops-data/internal/domain"
)

// CompletedForArchive 选出应在日结时归档（软删除）的任务：
// status == completed 且尚未删除。刻意不看任务年龄——午夜前一分钟
// 完成的任务同样归档。
func CompletedForArchive(tasks []domain.Task) []domain.Task {
	out := []domain.Task{}
	for _, t := range tasks {
		if t.Status == domain.TaskStatusCompleted && !t.IsDeleted {
			out = append(out, t)
		}
	}
	return out
}
