package prompt

import (
	"strings"
	"testing"
	"time"

	"the-family-be/internal/constant"
	"the-family-be/internal/entity"

	"github.com/google/uuid"
)

func donMessage(sitDownId uuid.UUID, user *entity.User, content string, at time.Time) *entity.Message {
	return &entity.Message{
		Id:           uuid.New(),
		SitDownId:    sitDownId,
		SenderType:   constant.MessageSenderDon,
		SenderUserId: &user.Id,
		Content:      content,
		CreatedAt:    at,
		Profile:      user,
	}
}

func memberMessage(sitDownId uuid.UUID, member *entity.Member, content string, at time.Time) *entity.Message {
	return &entity.Message{
		Id:             uuid.New(),
		SitDownId:      sitDownId,
		SenderType:     constant.MessageSenderMember,
		SenderMemberId: &member.Id,
		Content:        content,
		CreatedAt:      at,
		Member:         member,
	}
}

func TestBuildRoleTagging(t *testing.T) {
	sitDownId := uuid.New()
	don := &entity.User{Id: uuid.New(), DisplayName: "Mike"}
	vinnie := &entity.Member{Id: uuid.New(), OwnerId: don.Id, Name: "Vinnie", SystemPrompt: "You are Vinnie."}

	ctx := SitDownContext{
		Dons:       []Don{{UserId: don.Id, DisplayName: don.DisplayName}},
		AllMembers: []*entity.Member{vinnie},
	}

	base := time.Now()
	history := []*entity.Message{
		donMessage(sitDownId, don, "any news?", base),
		memberMessage(sitDownId, vinnie, "all quiet", base.Add(time.Second)),
		donMessage(sitDownId, don, "keep watching", base.Add(2*time.Second)),
		memberMessage(sitDownId, vinnie, "will do", base.Add(3*time.Second)),
		memberMessage(sitDownId, vinnie, "one more thing", base.Add(4*time.Second)),
	}

	built := Build(vinnie, history, ctx, 50)

	if len(built.Messages) != 5 {
		t.Fatalf("got %d turns, want 5", len(built.Messages))
	}

	wantRoles := []string{RoleUser, RoleAssistant, RoleUser, RoleAssistant, RoleUser}
	for i, want := range wantRoles {
		if built.Messages[i].Role != want {
			t.Errorf("turn %d role = %q, want %q", i, built.Messages[i].Role, want)
		}
	}

	// The trailing turn was Vinnie's own message: role flips, content stays.
	if built.Messages[4].Content != "one more thing" {
		t.Errorf("flipped turn content = %q, want verbatim content", built.Messages[4].Content)
	}

	if built.Messages[0].Content != "[Don Mike]: any news?" {
		t.Errorf("don turn = %q, want speaker label", built.Messages[0].Content)
	}
	if built.Messages[1].Content != "all quiet" {
		t.Errorf("own turn = %q, want unlabeled content", built.Messages[1].Content)
	}
}

func TestBuildWindowTruncation(t *testing.T) {
	sitDownId := uuid.New()
	don := &entity.User{Id: uuid.New(), DisplayName: "Mike"}
	vinnie := &entity.Member{Id: uuid.New(), OwnerId: don.Id, Name: "Vinnie"}

	ctx := SitDownContext{
		Dons:       []Don{{UserId: don.Id, DisplayName: don.DisplayName}},
		AllMembers: []*entity.Member{vinnie},
	}

	base := time.Now()
	var history []*entity.Message
	for i := 0; i < 10; i++ {
		history = append(history, donMessage(sitDownId, don, "line", base.Add(time.Duration(i)*time.Second)))
	}

	built := Build(vinnie, history, ctx, 4)
	if len(built.Messages) != 4 {
		t.Errorf("got %d turns, want window of 4", len(built.Messages))
	}
}

func TestBuildDuplicateNameLabels(t *testing.T) {
	sitDownId := uuid.New()
	mike := &entity.User{Id: uuid.New(), DisplayName: "Mike"}
	sarah := &entity.User{Id: uuid.New(), DisplayName: "Sarah"}
	mikesTom := &entity.Member{Id: uuid.New(), OwnerId: mike.Id, Name: "Tom"}
	sarahsTom := &entity.Member{Id: uuid.New(), OwnerId: sarah.Id, Name: "Tom"}

	ctx := SitDownContext{
		IsCommission: true,
		Dons: []Don{
			{UserId: mike.Id, DisplayName: mike.DisplayName},
			{UserId: sarah.Id, DisplayName: sarah.DisplayName},
		},
		AllMembers: []*entity.Member{mikesTom, sarahsTom},
	}

	history := []*entity.Message{
		memberMessage(sitDownId, sarahsTom, "the shipment arrived", time.Now()),
		donMessage(sitDownId, mike, "good", time.Now().Add(time.Second)),
	}

	built := Build(mikesTom, history, ctx, 50)
	if built.Messages[0].Content != "[Tom (Don Sarah's)]: the shipment arrived" {
		t.Errorf("colliding-name turn = %q, want owner-disambiguated label", built.Messages[0].Content)
	}
}

func TestBuildSystemPreamble(t *testing.T) {
	mike := &entity.User{Id: uuid.New(), DisplayName: "Mike"}
	sarah := &entity.User{Id: uuid.New(), DisplayName: "Sarah"}
	vinnie := &entity.Member{Id: uuid.New(), OwnerId: mike.Id, Name: "Vinnie", SystemPrompt: "You are Vinnie, the lookout."}

	t.Run("personal sit-down", func(t *testing.T) {
		ctx := SitDownContext{
			Dons:       []Don{{UserId: mike.Id, DisplayName: mike.DisplayName}},
			AllMembers: []*entity.Member{vinnie},
		}
		built := Build(vinnie, nil, ctx, 50)

		if !strings.Contains(built.System, `Your name is "Vinnie"`) {
			t.Errorf("system missing identity line: %q", built.System)
		}
		if !strings.Contains(built.System, "You report to Don Mike.") {
			t.Errorf("system missing ownership line: %q", built.System)
		}
		if !strings.HasSuffix(built.System, "You are Vinnie, the lookout.") {
			t.Errorf("system should end with the member's own prompt: %q", built.System)
		}
	})

	t.Run("commission sit-down", func(t *testing.T) {
		ctx := SitDownContext{
			IsCommission: true,
			Dons: []Don{
				{UserId: mike.Id, DisplayName: mike.DisplayName},
				{UserId: sarah.Id, DisplayName: sarah.DisplayName},
			},
			AllMembers: []*entity.Member{vinnie},
		}
		built := Build(vinnie, nil, ctx, 50)

		if !strings.Contains(built.System, "You were created by Don Mike. You report to Don Mike.") {
			t.Errorf("system missing creation line: %q", built.System)
		}
		if !strings.Contains(built.System, "- Don Mike's team: Vinnie") {
			t.Errorf("system missing roster line: %q", built.System)
		}
		if !strings.Contains(built.System, "- Don Sarah (no members at the table)") {
			t.Errorf("system missing empty-team line: %q", built.System)
		}
		if !strings.Contains(built.System, "defer to Don Mike") {
			t.Errorf("system missing deference line: %q", built.System)
		}
	})
}
