package gen

import (
	"context"
	"fmt"
	"time"

	"workseed/internal/content"
	"workseed/internal/dist"
	"workseed/internal/domain"
	"workseed/internal/refdata"
)

// genComments writes discussion threads under a fraction of tasks. Authors
// come from the people already attached to the task so threads read like
// real back-and-forth rather than drive-by noise.
func (g *Generator) genComments(ctx context.Context) error {
	prjName := map[string]string{}
	for _, p := range g.g.Projects {
		prjName[p.ID] = p.Name
	}
	total := len(g.g.Tasks)
	for i := 0; i < total; i++ {
		t := g.g.Tasks[i]
		if !dist.Bernoulli(g.s.comment, g.cfg.Rates.Comment) {
			continue
		}
		n := g.countIn(g.s.comment, g.cfg.Volumes.CommentsPerTask)
		authors := commentAuthors(t)
		prev := t.CreatedAt
		for k := 0; k < n; k++ {
			created, err := g.tl.After(g.s.comment, []time.Time{prev}, 168*time.Hour)
			if err != nil {
				break
			}
			prev = created
			name := ""
			if t.ProjectID != nil {
				name = prjName[*t.ProjectID]
			}
			body := g.text(ctx, content.Request{
				Kind:           content.CommentBody,
				ProjectName:    name,
				ParentTaskName: t.Name,
			})
			c := domain.Comment{
				ID:          g.id("comment"),
				TaskID:      t.ID,
				UserID:      authors[g.s.comment.IntN(len(authors))],
				CommentType: "comment",
				Text:        body,
				CreatedAt:   created,
			}
			if dist.Bernoulli(g.s.comment, 0.3) {
				c.NumLikes = dist.IntBetween(g.s.comment, 0, 3)
			}
			g.g.Comments = append(g.g.Comments, c)
		}
	}
	g.recountComments()
	return nil
}

func commentAuthors(t domain.Task) []string {
	authors := []string{t.CreatedBy}
	if t.AssigneeID != nil && *t.AssigneeID != t.CreatedBy {
		authors = append(authors, *t.AssigneeID)
	}
	return authors
}

func (g *Generator) recountComments() {
	counts := map[string]int{}
	for _, c := range g.g.Comments {
		counts[c.TaskID]++
	}
	for i := range g.g.Tasks {
		if c, ok := counts[g.g.Tasks[i].ID]; ok {
			g.g.Tasks[i].NumComments = c
		}
	}
}

// genFieldValues populates custom field values per task, at most one value
// per (task, field) pair. Enum fields dominate; number and text fields only
// appear on sprint-style projects where they make sense.
func (g *Generator) genFieldValues(_ context.Context) error {
	prjType := map[string]string{}
	for _, p := range g.g.Projects {
		prjType[p.ID] = p.ProjectType
	}
	for _, t := range g.g.Tasks {
		if t.ProjectID == nil {
			continue
		}
		sprint := prjType[*t.ProjectID] == "Sprint"
		if dist.Bernoulli(g.s.fieldValue, 0.7) {
			if err := g.addEnumValue(t, "Priority"); err != nil {
				return err
			}
		}
		if dist.Bernoulli(g.s.fieldValue, 0.5) {
			if err := g.addEnumValue(t, "Effort"); err != nil {
				return err
			}
		}
		if sprint && dist.Bernoulli(g.s.fieldValue, 0.4) {
			fieldID := g.fieldByName["Story Points"]
			points := []float64{1, 2, 3, 5, 8, 13}
			v := domain.NumberValue(points[g.s.fieldValue.IntN(len(points))])
			if err := g.addFieldValue(t, fieldID, v); err != nil {
				return err
			}
		}
		if sprint && dist.Bernoulli(g.s.fieldValue, 0.3) {
			fieldID := g.fieldByName["Sprint"]
			v := domain.TextValue(fmt.Sprintf("Sprint %d", 1+g.s.fieldValue.IntN(12)))
			if err := g.addFieldValue(t, fieldID, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) addEnumValue(t domain.Task, fieldName string) error {
	fieldID := g.fieldByName[fieldName]
	options := g.optionsByFld[fieldID]
	if len(options) == 0 {
		return nil
	}
	v := domain.EnumValue(options[g.s.fieldValue.IntN(len(options))])
	return g.addFieldValue(t, fieldID, v)
}

func (g *Generator) addFieldValue(t domain.Task, fieldID string, v domain.FieldValue) error {
	var def *domain.CustomFieldDefinition
	for i := range g.g.Fields {
		if g.g.Fields[i].ID == fieldID {
			def = &g.g.Fields[i]
			break
		}
	}
	if def == nil {
		return fmt.Errorf("custom field value: unknown field %s", fieldID)
	}
	if err := v.CheckAgainst(*def); err != nil {
		return fmt.Errorf("custom field value for %s: %w", def.Name, err)
	}
	created, err := g.tl.After(g.s.fieldValue, []time.Time{t.CreatedAt}, 72*time.Hour)
	if err != nil {
		created = t.CreatedAt
	}
	g.g.FieldValues = append(g.g.FieldValues, domain.CustomFieldValue{
		ID:         g.id("custom_field_value"),
		TaskID:     t.ID,
		FieldID:    fieldID,
		Value:      v,
		CreatedAt:  created,
		ModifiedAt: created,
	})
	return nil
}

// genTaskTags applies one or two distinct tags to a fraction of tasks.
func (g *Generator) genTaskTags(_ context.Context) error {
	if len(g.g.Tags) == 0 {
		return nil
	}
	for _, t := range g.g.Tasks {
		if !dist.Bernoulli(g.s.taskTag, g.cfg.Rates.Tagged) {
			continue
		}
		n := 1 + g.s.taskTag.IntN(2)
		seen := map[string]bool{}
		for k := 0; k < n; k++ {
			tag := g.g.Tags[g.s.taskTag.IntN(len(g.g.Tags))]
			if seen[tag.ID] {
				continue
			}
			seen[tag.ID] = true
			created, err := g.tl.After(g.s.taskTag, []time.Time{t.CreatedAt}, 96*time.Hour)
			if err != nil {
				created = t.CreatedAt
			}
			g.g.TaskTags = append(g.g.TaskTags, domain.TaskTag{
				ID:        g.id("task_tag"),
				TaskID:    t.ID,
				TagID:     tag.ID,
				CreatedAt: created,
			})
		}
	}
	return nil
}

// genAttachments uploads files to a fraction of tasks. Filenames are
// sequential so the storage URLs stay stable across runs with the same seed.
func (g *Generator) genAttachments(_ context.Context) error {
	seq := 0
	for _, t := range g.g.Tasks {
		if !dist.Bernoulli(g.s.attachment, g.cfg.Rates.Attachment) {
			continue
		}
		at := refdata.AttachmentTypes[g.s.attachment.IntN(len(refdata.AttachmentTypes))]
		ext := at.Extensions[g.s.attachment.IntN(len(at.Extensions))]
		seq++
		filename := fmt.Sprintf("attachment_%04d%s", seq, ext)
		created, err := g.tl.After(g.s.attachment, []time.Time{t.CreatedAt}, 120*time.Hour)
		if err != nil {
			created = t.CreatedAt
		}
		size := int64(1024 + g.s.attachment.IntN(10*1024*1024-1024))
		g.g.Attachments = append(g.g.Attachments, domain.Attachment{
			ID:         g.id("attachment"),
			TaskID:     t.ID,
			UploadedBy: t.CreatedBy,
			Filename:   filename,
			FileType:   at.MIME,
			FileSize:   size,
			StorageURL: "https://storage.example.com/attachments/" + filename,
			CreatedAt:  created,
		})
	}
	return nil
}
