package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/media"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

type boardMemberRequest struct {
	Name      string `json:"name" form:"name" validate:"notblank,max=200"`
	Position  string `json:"position" form:"position" validate:"notblank,max=200"`
	Bio       string `json:"bio" form:"bio"`
	BoardType string `json:"board_type" form:"board_type" validate:"required"`
}

func (a *API) GetChancellor(c *gin.Context) {
	chancellor, err := a.governance.Chancellor(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrChancellorNotFound) {
			respondError(c, http.StatusNotFound, "Not found.")
			return
		}
		a.respondServerError(c, err, "failed to load chancellor")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).chancellor(*chancellor))
}

// ListBoardMembers 支持 ?board_type= 过滤，未知类型返回空列表。
func (a *API) ListBoardMembers(c *gin.Context) {
	boardType := strings.TrimSpace(c.Query("board_type"))
	listPage(a, c, func(page, perPage int) (service.Page[db.BoardMember], error) {
		return a.governance.BoardMembers(c.Request.Context(), boardType, page, perPage)
	}, a.payloads(c).boardMember)
}

func (a *API) ListGovernanceBodies(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.GovernanceBody], error) {
		return a.governance.Bodies(c.Request.Context(), page, perPage)
	}, a.payloads(c).governanceBody)
}

func (a *API) GetGovernanceBody(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Not found.")
		return
	}
	body, err := a.governance.Body(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGovernanceBodyNotFound) {
			respondError(c, http.StatusNotFound, "Not found.")
			return
		}
		a.respondServerError(c, err, "failed to load governance body")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).governanceBody(*body))
}

// GetGovernanceStructure 返回校监与全部治理机构，校监缺失时为 null。
func (a *API) GetGovernanceStructure(c *gin.Context) {
	structure, err := a.governance.Structure(c.Request.Context())
	if err != nil {
		a.respondServerError(c, err, "failed to load governance structure")
		return
	}

	p := a.payloads(c)
	var chancellor interface{}
	if structure.Chancellor != nil {
		chancellor = p.chancellor(*structure.Chancellor)
	}
	c.JSON(http.StatusOK, gin.H{
		"chancellor":        chancellor,
		"governance_bodies": serializeAll(structure.Bodies, p.governanceBody),
	})
}

// CreateBoardMember 新建董事会成员，必须以 multipart 附带 photo。
func (a *API) CreateBoardMember(c *gin.Context) {
	var req boardMemberRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	photo, ok := upload.image(c, "photo", media.KindPhoto)
	if !ok {
		return
	}
	member, err := a.governance.CreateBoardMember(c.Request.Context(), service.BoardMemberInput{
		Name:      req.Name,
		Position:  req.Position,
		Bio:       req.Bio,
		BoardType: req.BoardType,
		Photo:     photo,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to create board member")
		return
	}
	c.JSON(http.StatusCreated, a.payloads(c).boardMember(*member))
}

func (a *API) UpdateBoardMember(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	var req boardMemberRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	photo, ok := upload.image(c, "photo", media.KindPhoto)
	if !ok {
		return
	}
	member, obsolete, err := a.governance.UpdateBoardMember(c.Request.Context(), id, service.BoardMemberInput{
		Name:      req.Name,
		Position:  req.Position,
		Bio:       req.Bio,
		BoardType: req.BoardType,
		Photo:     photo,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to update board member", service.ErrBoardMemberNotFound)
		return
	}
	a.discardMedia(obsolete...)
	c.JSON(http.StatusOK, a.payloads(c).boardMember(*member))
}

func (a *API) DeleteBoardMember(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	files, err := a.governance.DeleteBoardMember(c.Request.Context(), id)
	if err != nil {
		a.respondContentError(c, err, "failed to delete board member", service.ErrBoardMemberNotFound)
		return
	}
	a.discardMedia(files...)
	c.Status(http.StatusNoContent)
}
