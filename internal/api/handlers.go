package api

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pbaille/ventures/internal/acknowledgment"
	"github.com/pbaille/ventures/internal/catalog"
	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/notification"
	"github.com/pbaille/ventures/internal/pitch"
	"github.com/pbaille/ventures/internal/watchlist"
)

// StartupView is a catalog entry with its display score
type StartupView struct {
	domain.StartupIdea
	DisplayScore int `json:"displayScore"`
}

func viewOf(idea domain.StartupIdea) StartupView {
	return StartupView{StartupIdea: idea, DisplayScore: int(math.Round(idea.ValidationScore.Normalized()))}
}

// GET /api/me
func (s *Server) me(c *gin.Context) {
	ctx := c.Request.Context()
	u, err := s.deps.Identity.Current(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	unread, err := s.deps.Notifications.UnreadCount(ctx, u.RecipientIDs()...)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"me": u, "unreadNotifications": unread})
}

// GET /api/startups?q=&viability=
func (s *Server) searchStartups(c *gin.Context) {
	query := c.Query("q")
	ideas, err := s.deps.Catalog.Search(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err)
		return
	}
	ideas = catalog.FilterByViability(ideas, domain.ViabilityLevel(c.Query("viability")))

	views := make([]StartupView, 0, len(ideas))
	for _, idea := range ideas {
		views = append(views, viewOf(idea))
	}
	c.JSON(http.StatusOK, gin.H{"startups": views, "query": query})
}

// GET /api/startups/:id
func (s *Server) getStartup(c *gin.Context) {
	ctx := c.Request.Context()
	idea, err := s.deps.Catalog.FindByID(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	watched, err := s.deps.Watchlist.Contains(ctx, idea.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"startup": viewOf(idea), "watched": watched})
}

// POST /api/startups/:id/pitch
func (s *Server) generatePitch(c *gin.Context) {
	ctx := c.Request.Context()
	idea, err := s.deps.Catalog.FindByID(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	content, err := s.deps.Pitch.Generate(ctx, idea)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pitch": content, "text": pitch.ExportText(content)})
}

// GET /api/watchlist
func (s *Server) listWatchlist(c *gin.Context) {
	items, err := s.deps.Watchlist.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "summary": watchlist.Summarize(items)})
}

type addWatchlistRequest struct {
	StartupID string `json:"startupId"`
}

// POST /api/watchlist
func (s *Server) addToWatchlist(c *gin.Context) {
	var req addWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.StartupID) == "" {
		writeError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("startupId is required"))
		return
	}

	ctx := c.Request.Context()
	idea, err := s.deps.Catalog.FindByID(ctx, req.StartupID)
	if err != nil {
		s.fail(c, err)
		return
	}
	item, err := s.deps.Watchlist.Add(ctx, idea)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DELETE /api/watchlist/:id
func (s *Server) removeFromWatchlist(c *gin.Context) {
	removed, err := s.deps.Watchlist.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

type submitAcknowledgmentRequest struct {
	StartupID      string                     `json:"startupId"`
	Proposal       *domain.InvestmentProposal `json:"proposal"`
	Acknowledgment domain.AcknowledgmentData  `json:"acknowledgment"`
}

// POST /api/acknowledgments
func (s *Server) submitAcknowledgment(c *gin.Context) {
	var req submitAcknowledgmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res, err := s.deps.Acknowledgments.Submit(c.Request.Context(), acknowledgment.Submission{
		StartupID: req.StartupID,
		Proposal:  req.Proposal,
		Data:      req.Acknowledgment,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/acknowledgments?startupId=
func (s *Server) listAcknowledgments(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		acks []domain.Acknowledgment
		err  error
	)
	if id := c.Query("startupId"); id != "" {
		acks, err = s.deps.Acknowledgments.ListForStartup(ctx, id)
	} else {
		acks, err = s.deps.Acknowledgments.List(ctx)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledgments": acks})
}

// GET /api/notifications?unread=true
func (s *Server) listNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	u, err := s.deps.Identity.Current(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	list, err := s.deps.Notifications.ListFor(ctx, notification.ListOptions{UnreadOnly: queryBool(c, "unread")}, u.RecipientIDs()...)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// POST /api/notifications/:id/read
func (s *Server) markNotificationRead(c *gin.Context) {
	changed, err := s.deps.Notifications.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// POST /api/notifications/read-all
func (s *Server) markAllNotificationsRead(c *gin.Context) {
	ctx := c.Request.Context()
	u, err := s.deps.Identity.Current(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	n, err := s.deps.Notifications.MarkAllRead(ctx, u.RecipientIDs()...)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": n})
}
