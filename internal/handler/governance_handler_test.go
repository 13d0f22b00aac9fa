package handler

import (
	"net/http"
	"testing"

	"github.com/campuscms/internal/db"
)

func TestGovernanceStructureWithoutChancellor(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	member := db.BoardMember{Name: "Dr. A", Position: "Chair", BoardType: db.BoardCouncil}
	if err := gdb.Create(&member).Error; err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	body := db.GovernanceBody{Name: "University Council", Members: []db.BoardMember{member}}
	if err := gdb.Create(&body).Error; err != nil {
		t.Fatalf("failed to seed governance body: %v", err)
	}

	c, w := newContext(http.MethodGet, "/api/v1/governance/governance-structure/", nil)
	api.GetGovernanceStructure(c)
	assertStatus(t, w, http.StatusOK)

	out := decodeBody(t, w)
	if out["chancellor"] != nil {
		t.Fatalf("expected null chancellor, got %v", out["chancellor"])
	}
	bodies, _ := out["governance_bodies"].([]interface{})
	if len(bodies) != 1 {
		t.Fatalf("expected one governance body, got %v", out["governance_bodies"])
	}
	members, _ := bodies[0].(map[string]interface{})["members"].([]interface{})
	if len(members) != 1 {
		t.Fatalf("expected one member, got %v", bodies[0])
	}

	c, w = newContext(http.MethodGet, "/api/v1/governance/chancellor/", nil)
	api.GetChancellor(c)
	assertStatus(t, w, http.StatusNotFound)
}

func TestListBoardMembersFilter(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	members := []db.BoardMember{
		{Name: "Council Member", Position: "Member", BoardType: db.BoardCouncil},
		{Name: "Senate Member", Position: "Member", BoardType: db.BoardSenate},
	}
	if err := gdb.Create(&members).Error; err != nil {
		t.Fatalf("failed to seed members: %v", err)
	}

	c, w := newContext(http.MethodGet, "/api/v1/governance/board-members/?board_type=senate", nil)
	api.ListBoardMembers(c)
	assertStatus(t, w, http.StatusOK)

	if got := decodeBody(t, w)["count"]; got != float64(1) {
		t.Fatalf("expected 1 senate member, got %v", got)
	}
}
