// Package prompt builds per-member provider context from a sit-down's
// message history: role-tagging from the member's point of view, a bounded
// history window, and a synthesized system preamble describing identity
// and ownership.
package prompt

import (
	"fmt"
	"strings"

	"the-family-be/internal/constant"
	"the-family-be/internal/entity"

	"github.com/google/uuid"
)

// Don is an owning user present at a sit-down.
type Don struct {
	UserId      uuid.UUID
	DisplayName string
}

// SitDownContext describes who is at the table when building a prompt.
type SitDownContext struct {
	IsCommission bool
	Dons         []Don
	AllMembers   []*entity.Member
}

// Turn is one role-tagged message in provider wire order.
type Turn struct {
	Role    string
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Built is the provider-ready context for one member.
type Built struct {
	System   string
	Messages []Turn
}

// Build assembles the system prompt and role-tagged history for member.
// Only member's own prior messages become assistant turns; everything else
// (dons and other members) is user context so the model does not generate
// dialogue on behalf of other participants. The history window keeps the
// most recent maxMessages entries.
func Build(member *entity.Member, history []*entity.Message, ctx SitDownContext, maxMessages int) Built {
	if maxMessages <= 0 {
		maxMessages = constant.MaxContextMessages
	}
	recent := history
	if len(recent) > maxMessages {
		recent = recent[len(recent)-maxMessages:]
	}

	duplicates := duplicateMemberNames(ctx.AllMembers)
	donsById := make(map[uuid.UUID]Don, len(ctx.Dons))
	for _, d := range ctx.Dons {
		donsById[d.UserId] = d
	}

	turns := make([]Turn, 0, len(recent))
	for _, msg := range recent {
		turns = append(turns, tagTurn(member, msg, duplicates, donsById))
	}

	// Providers reject a trailing assistant turn. If the newest message in
	// the window is this member's own, flip its role and keep the content.
	if len(turns) > 0 && turns[len(turns)-1].Role == RoleAssistant {
		turns[len(turns)-1].Role = RoleUser
	}

	return Built{
		System:   buildSystemPrompt(member, ctx),
		Messages: turns,
	}
}

func tagTurn(member *entity.Member, msg *entity.Message, duplicates map[string]bool, donsById map[uuid.UUID]Don) Turn {
	if msg.SenderType == constant.MessageSenderMember && msg.SenderMemberId != nil && *msg.SenderMemberId == member.Id {
		return Turn{Role: RoleAssistant, Content: msg.Content}
	}

	if msg.SenderType == constant.MessageSenderDon {
		name := "Don"
		if msg.Profile != nil {
			name = msg.Profile.DisplayName
		}
		return Turn{Role: RoleUser, Content: fmt.Sprintf("[Don %s]: %s", name, msg.Content)}
	}

	memberName := "Unknown"
	if msg.Member != nil {
		memberName = msg.Member.Name
	}
	if msg.Member != nil && duplicates[memberName] {
		if owner, ok := donsById[msg.Member.OwnerId]; ok {
			return Turn{Role: RoleUser, Content: fmt.Sprintf("[%s (Don %s's)]: %s", memberName, owner.DisplayName, msg.Content)}
		}
	}
	return Turn{Role: RoleUser, Content: fmt.Sprintf("[%s]: %s", memberName, msg.Content)}
}

func buildSystemPrompt(member *entity.Member, ctx SitDownContext) string {
	preamble := fmt.Sprintf(`Your name is %q. Never prefix your responses with your name or a label like "[%s]:" — just respond directly with your message. Respond only as yourself — do not write dialogue or responses for other participants. When multiple roles are addressed in the same message, focus on the instructions directed at you.`, member.Name, member.Name)

	if ctx.IsCommission {
		donName := "your Don"
		for _, d := range ctx.Dons {
			if d.UserId == member.OwnerId {
				donName = "Don " + d.DisplayName
				break
			}
		}

		preamble += fmt.Sprintf("\n\nYou were created by %s. You report to %s.", donName, donName)

		var familyLines []string
		for _, don := range ctx.Dons {
			var names []string
			for _, m := range ctx.AllMembers {
				if m.OwnerId == don.UserId {
					names = append(names, m.Name)
				}
			}
			if len(names) > 0 {
				familyLines = append(familyLines, fmt.Sprintf("- Don %s's team: %s", don.DisplayName, strings.Join(names, ", ")))
			} else {
				familyLines = append(familyLines, fmt.Sprintf("- Don %s (no members at the table)", don.DisplayName))
			}
		}

		preamble += fmt.Sprintf("\n\nThis is a group sit-down. The people and roles present are:\n%s", strings.Join(familyLines, "\n"))
		preamble += fmt.Sprintf("\n\nAlways address Dons as \"Don [Name]\". Be helpful to everyone, but if there's a conflict of interest, defer to %s.", donName)
	} else if len(ctx.Dons) > 0 {
		preamble += fmt.Sprintf(" You report to Don %s. Always address them as \"Don %s\".", ctx.Dons[0].DisplayName, ctx.Dons[0].DisplayName)
	}

	return preamble + "\n\n" + member.SystemPrompt
}

func duplicateMemberNames(members []*entity.Member) map[string]bool {
	counts := make(map[string]int)
	for _, m := range members {
		counts[m.Name]++
	}
	duplicates := make(map[string]bool)
	for name, count := range counts {
		if count > 1 {
			duplicates[name] = true
		}
	}
	return duplicates
}
