package analysis

import "github.com/weekwise/weekwise-api/internal/domain"

// GroupTasksByDay buckets tasks under each of the seven canonical days,
// preserving input order within a bucket. Tasks whose day is not one of
// the canonical names are dropped; the planner UI never produces them
// and validating here would change nothing downstream.
func GroupTasksByDay(tasks []domain.Task) map[domain.Weekday][]domain.Task {
	grouped := make(map[domain.Weekday][]domain.Task, len(domain.Week))
	for _, day := range domain.Week {
		grouped[day] = []domain.Task{}
	}
	for _, t := range tasks {
		if _, ok := grouped[t.Day]; ok {
			grouped[t.Day] = append(grouped[t.Day], t)
		}
	}
	return grouped
}

// CalculateDailyLoads converts per-day buckets into one DailyLoad per
// day, in canonical week order. Load is a fixed 2 points per task and
// the label thresholds apply to the load, not the task count.
func CalculateDailyLoads(tasksByDay map[domain.Weekday][]domain.Task) []domain.DailyLoad {
	loads := make([]domain.DailyLoad, 0, len(domain.Week))
	for _, day := range domain.Week {
		taskCount := len(tasksByDay[day])
		load := taskCount * 2

		label := domain.LoadBalanced
		switch {
		case load == 0:
			label = domain.LoadFree
		case load <= 3:
			label = domain.LoadLight
		case load >= 7:
			label = domain.LoadHeavy
		}

		loads = append(loads, domain.DailyLoad{
			Day:       day,
			TaskCount: taskCount,
			Load:      load,
			Label:     label,
		})
	}
	return loads
}
