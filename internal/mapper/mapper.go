// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"taskboard/internal/entities"
	"taskboard/internal/transport/http/dto"
)

// ToDTOUser maps entities.User to transport model.
func ToDTOUser(u entities.User) dto.User {
	return dto.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToDTOUserList maps a user slice to transport models.
func ToDTOUserList(users []entities.User) []dto.User {
	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, ToDTOUser(u))
	}
	return out
}

// ToDTOTeam maps entities.Team to transport model.
func ToDTOTeam(t entities.Team) dto.Team {
	return dto.Team{
		ID:        t.ID,
		Name:      t.Name,
		OwnerID:   t.OwnerID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToDTOTeamList maps a team slice to transport models.
func ToDTOTeamList(teams []entities.Team) []dto.Team {
	out := make([]dto.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, ToDTOTeam(t))
	}
	return out
}

// ToDTOMember maps entities.TeamMember to transport model.
func ToDTOMember(m entities.TeamMember) dto.TeamMember {
	return dto.TeamMember{
		ID:        m.ID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
	}
}

// ToDTOMemberList maps a membership slice to transport models.
func ToDTOMemberList(members []entities.TeamMember) []dto.TeamMember {
	out := make([]dto.TeamMember, 0, len(members))
	for _, m := range members {
		out = append(out, ToDTOMember(m))
	}
	return out
}

// ToDTOTask maps entities.Task to transport model.
func ToDTOTask(t entities.Task) dto.Task {
	return dto.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		AssigneeID:  t.AssigneeID,
		CreatorID:   t.CreatorID,
		TeamID:      t.TeamID,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToDTOTaskList maps a task slice to transport models.
func ToDTOTaskList(tasks []entities.Task) []dto.Task {
	out := make([]dto.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToDTOTask(t))
	}
	return out
}

// ToDTOHistoryList maps task history entries to transport models.
func ToDTOHistoryList(history []entities.TaskHistoryEntry) []dto.TaskHistoryEntry {
	out := make([]dto.TaskHistoryEntry, 0, len(history))
	for _, h := range history {
		out = append(out, dto.TaskHistoryEntry{
			ID:        h.ID,
			TaskID:    h.TaskID,
			UserID:    h.UserID,
			Field:     h.Field,
			OldValue:  h.OldValue,
			NewValue:  h.NewValue,
			ChangedAt: h.ChangedAt,
		})
	}
	return out
}

// ToDTOActivityList maps activity entries to transport models.
func ToDTOActivityList(acts []entities.Activity) []dto.Activity {
	out := make([]dto.Activity, 0, len(acts))
	for _, a := range acts {
		out = append(out, dto.Activity{
			ID:         a.ID,
			UserID:     a.UserID,
			EntityType: string(a.EntityType),
			EntityID:   a.EntityID,
			Action:     string(a.Action),
			Metadata:   a.Metadata,
			CreatedAt:  a.CreatedAt,
		})
	}
	return out
}

// FromDTOCreateTask builds a usecase input from the transport request.
func FromDTOCreateTask(req dto.CreateTaskRequest) entities.CreateTaskInput {
	return entities.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      entities.TaskStatus(req.Status),
		Priority:    entities.TaskPriority(req.Priority),
		AssigneeID:  req.AssigneeID,
		CreatorID:   req.CreatorID,
		TeamID:      req.TeamID,
		DueDate:     req.DueDate,
		ActorID:     req.ActorID,
	}
}

// FromDTOUpdateTask builds a usecase input from the transport request,
// preserving which fields were present.
func FromDTOUpdateTask(req dto.UpdateTaskRequest) entities.UpdateTaskInput {
	input := entities.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		ActorID:     req.ActorID,
	}
	if req.Status != nil {
		s := entities.TaskStatus(*req.Status)
		input.Status = &s
	}
	if req.Priority != nil {
		p := entities.TaskPriority(*req.Priority)
		input.Priority = &p
	}
	return input
}
