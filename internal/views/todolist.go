package views

import (
	"fmt"
	"sort"

	"github.com/Paintersrp/noteplan/internal/cache"
	"github.com/Paintersrp/noteplan/internal/note"
)

// TodoList is the rendered todo pane, daily todos first.
type TodoList struct {
	Todos   []note.Todo
	Message string
	Err     error
}

func (l TodoList) Empty() bool {
	return len(l.Todos) == 0
}

// BuildTodoList partitions the cached todos into daily and regular groups,
// each ordered by task text. Completion does not affect order.
func BuildTodoList(c *cache.TodoCache) TodoList {
	if err := c.Err(); err != nil {
		return TodoList{Err: err, Message: fmt.Sprintf("Error loading todos: %v", err)}
	}

	todos := c.Todos()
	if len(todos) == 0 {
		return TodoList{Message: "No todos!"}
	}

	var daily, regular []note.Todo
	for _, t := range todos {
		if t.IsDaily {
			daily = append(daily, t)
		} else {
			regular = append(regular, t)
		}
	}
	byTask := func(ts []note.Todo) {
		sort.SliceStable(ts, func(i, j int) bool { return ts[i].Task < ts[j].Task })
	}
	byTask(daily)
	byTask(regular)

	return TodoList{Todos: append(daily, regular...)}
}
