package gen

import (
	"context"
	"fmt"
	"time"

	"workseed/internal/config"
	"workseed/internal/content"
	"workseed/internal/dist"
	"workseed/internal/domain"
	"workseed/internal/refdata"
)

// genTasks fills each project with top-level tasks. Placement biases toward
// early sections, assignment follows the power-law weights over the
// eligible member pool, and completion tracks the project type's base rate
// adjusted for task age. Tasks landing in the overdue due-date bucket stay
// incomplete.
func (g *Generator) genTasks(ctx context.Context) error {
	for pi := range g.g.Projects {
		p := g.g.Projects[pi]
		sections := g.sectionsByPrj[p.ID]
		if len(sections) == 0 {
			continue
		}
		members, senior := g.eligiblePool(p)
		if len(members) == 0 {
			continue
		}
		assignWeights := dist.AssignmentWeights(g.s.taskAssign, len(members),
			g.cfg.Assignment.Exponent, senior, g.cfg.Assignment.SeniorBoost)
		sectionWeights := make([]float64, len(sections))
		for i := range sectionWeights {
			sectionWeights[i] = 1 / float64(i+1)
		}

		n := g.countIn(g.s.task, g.cfg.Volumes.TasksPerProject)
		for i := 0; i < n; i++ {
			err := g.withRetry("task", func() error {
				t, err := g.buildTask(ctx, p, sections, sectionWeights, members, assignWeights)
				if err != nil {
					return err
				}
				g.g.AddTask(t)
				g.tasksByPrj[p.ID] = append(g.tasksByPrj[p.ID], t.ID)
				return nil
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// eligiblePool resolves the assignee pool for a project: team members for
// team-scoped projects, the whole organization otherwise.
func (g *Generator) eligiblePool(p domain.Project) ([]string, []bool) {
	if p.TeamID != nil {
		return g.membersByTeam[*p.TeamID], g.seniorByTeam[*p.TeamID]
	}
	members := make([]string, len(g.g.Users))
	senior := make([]bool, len(g.g.Users))
	for i, u := range g.g.Users {
		members[i] = u.ID
		senior[i] = seniorUser(u)
	}
	return members, senior
}

func (g *Generator) buildTask(ctx context.Context, p domain.Project, sections []string, sectionWeights []float64, members []string, assignWeights []float64) (domain.Task, error) {
	now := g.now()
	created, err := g.tl.WorkdayBetween(g.s.task, p.CreatedAt, now)
	if err != nil {
		return domain.Task{}, err
	}

	name := g.text(ctx, content.Request{
		Kind:         content.TaskName,
		TeamType:     p.WorkflowType,
		WorkflowType: p.WorkflowType,
		ProjectName:  p.Name,
	})
	desc := g.text(ctx, content.Request{
		Kind:           content.TaskDescription,
		WorkflowType:   p.WorkflowType,
		ProjectName:    p.Name,
		ParentTaskName: name,
	})

	sectionID := dist.ChooseWeighted(g.s.task, sections, sectionWeights)

	var assignee *string
	if !dist.Bernoulli(g.s.taskAssign, g.cfg.Rates.Unassigned) {
		id := dist.ChooseWeighted(g.s.taskAssign, members, assignWeights)
		assignee = &id
	}
	createdBy := members[g.s.task.IntN(len(members))]

	due, bucket := dist.SampleDueDate(g.s.taskDue, created, now, g.cfg.DueDates, g.cfg.Rates.WeekendAvoidance)

	projectID := p.ID
	t := domain.Task{
		ID:          g.id("task"),
		ProjectID:   &projectID,
		SectionID:   &sectionID,
		Name:        name,
		Description: desc,
		AssigneeID:  assignee,
		CreatedBy:   createdBy,
		Status:      domain.TaskIncomplete,
		DueDate:     due,
		CreatedAt:   created,
	}

	if bucket != dist.DueOverdue {
		rate := g.completionRange(p.ProjectType)
		base := rate.Min + g.s.taskDone.Float64()*(rate.Max-rate.Min)
		pr := dist.CompletionProbability(base, created, due, now)
		if dist.Bernoulli(g.s.taskDone, pr) {
			done := dist.SampleCompletionTime(g.s.taskDone, created, due, now)
			by := createdBy
			if assignee != nil {
				by = *assignee
			}
			t.Status = domain.TaskComplete
			t.CompletedAt = &done
			t.CompletedBy = &by
		}
	}

	if t.CompletedAt != nil {
		t.ModifiedAt = *t.CompletedAt
	} else {
		mod, err := g.tl.Between(g.s.task, created, now)
		if err != nil {
			return domain.Task{}, err
		}
		t.ModifiedAt = mod
	}

	if dist.Bernoulli(g.s.task, 0.3) {
		t.NumLikes = dist.IntBetween(g.s.task, 0, 5)
	}
	return t, nil
}

func (g *Generator) completionRange(projectType string) config.FloatRange {
	if r, ok := g.cfg.CompletionRates[projectType]; ok {
		return r
	}
	return config.FloatRange{Min: 0.5, Max: 0.6}
}

// genSubtasks attaches subtasks to a fraction of top-level tasks. Subtasks
// inherit project, section, and assignee from their parent and may never
// parent tasks of their own; the depth-2 rule is enforced here by only ever
// drawing parents from the pre-subtask arena.
func (g *Generator) genSubtasks(_ context.Context) error {
	now := g.now()
	topLevel := len(g.g.Tasks)
	for i := 0; i < topLevel; i++ {
		parent := g.g.Tasks[i]
		if !dist.Bernoulli(g.s.subtask, g.cfg.Rates.Subtask) {
			continue
		}
		n := g.countIn(g.s.subtask, g.cfg.Volumes.SubtasksPerTask)
		for k := 0; k < n; k++ {
			err := g.withRetry("subtask", func() error {
				created, err := g.tl.After(g.s.subtask, []time.Time{parent.CreatedAt}, 48*time.Hour)
				if err != nil {
					return err
				}
				parentID := parent.ID
				st := domain.Task{
					ID:           g.id("task"),
					ProjectID:    parent.ProjectID,
					SectionID:    parent.SectionID,
					ParentTaskID: &parentID,
					Name:         fmt.Sprintf("Subtask %d: %s", k+1, truncate(parent.Name, 30)),
					AssigneeID:   parent.AssigneeID,
					CreatedBy:    parent.CreatedBy,
					Status:       domain.TaskIncomplete,
					CreatedAt:    created,
					ModifiedAt:   created,
				}
				if parent.Status == domain.TaskComplete && dist.Bernoulli(g.s.subtask, 0.8) {
					done := dist.SampleCompletionTime(g.s.subtask, created, nil, now)
					by := parent.CreatedBy
					if parent.AssigneeID != nil {
						by = *parent.AssigneeID
					}
					st.Status = domain.TaskComplete
					st.CompletedAt = &done
					st.CompletedBy = &by
					st.ModifiedAt = done
				}
				g.g.AddTask(st)
				return nil
			})
			if err != nil {
				return err
			}
		}
	}
	g.recountSubtasks()
	return nil
}

// recountSubtasks recomputes the derived parent counters from the actual
// children, never from an independent sample.
func (g *Generator) recountSubtasks() {
	counts := map[string]int{}
	for _, t := range g.g.Tasks {
		if t.ParentTaskID != nil {
			counts[*t.ParentTaskID]++
		}
	}
	for i := range g.g.Tasks {
		if c, ok := counts[g.g.Tasks[i].ID]; ok {
			g.g.Tasks[i].NumSubtasks = c
		}
	}
}

// genDependencies links top-level tasks within a project. An edge always
// points from a later-created task to an earlier one, which rules out
// self-loops and cycles by construction; an edge is skipped when the
// depended-upon task completed too long after the dependent was created.
func (g *Generator) genDependencies(_ context.Context) error {
	const slack = 7 * 24 * time.Hour
	for _, p := range g.g.Projects {
		ids := g.tasksByPrj[p.ID]
		for i := 1; i < len(ids); i++ {
			if !dist.Bernoulli(g.s.dependency, g.cfg.Rates.Dependency) {
				continue
			}
			task, _ := g.g.Task(ids[i])
			depID := ids[g.s.dependency.IntN(i)]
			dep, _ := g.g.Task(depID)
			if dep.CompletedAt != nil && dep.CompletedAt.After(task.CreatedAt.Add(slack)) {
				continue
			}
			created, err := g.tl.After(g.s.dependency, []time.Time{task.CreatedAt, dep.CreatedAt}, 24*time.Hour)
			if err != nil {
				continue
			}
			g.g.Dependencies = append(g.g.Dependencies, domain.TaskDependency{
				ID:              g.id("task_dependency"),
				TaskID:          task.ID,
				DependsOnTaskID: depID,
				CreatedAt:       created,
			})
		}
	}
	return nil
}

func seniorUser(u domain.User) bool {
	return refdata.SeniorTitle(u.JobTitle)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
