package server

import (
	"encoding/json"
	"errors"
	"net/http"

	claimdomain "github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/agriwelfare/stockclaims/internal/rollout"
	"github.com/agriwelfare/stockclaims/internal/rules"
	"github.com/gin-gonic/gin"
)

type submitClaimRequest struct {
	ApplicationReference string                `json:"applicationReference"`
	Reference            string                `json:"reference"`
	Type                 claimdomain.ClaimType `json:"type"`
	CreatedBy            string                `json:"createdBy"`
	Data                 json.RawMessage       `json:"data"`
}

func (s *Server) SubmitClaim(c *gin.Context) {
	var req submitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	claim, err := s.claimSvc.Submit(c.Request.Context(), claimdomain.SubmitRequest{
		ApplicationReference: req.ApplicationReference,
		Reference:            req.Reference,
		Type:                 req.Type,
		CreatedBy:            req.CreatedBy,
		RawData:              req.Data,
	})
	if err != nil {
		var validationErr *rules.ValidationError
		var dateErr *rollout.DateParseError
		if errors.As(err, &validationErr) || errors.As(err, &dateErr) {
			s.metrics.ClaimsRejected.WithLabelValues(speciesLabel(req.Data), string(req.Type)).Inc()
		}
		AbortWithError(c, err)
		return
	}

	s.metrics.ClaimsSubmitted.WithLabelValues(string(claim.Species), string(claim.Type)).Inc()
	c.JSON(http.StatusOK, gin.H{"data": claim})
}

func (s *Server) GetClaim(c *gin.Context) {
	claim, err := s.claimSvc.Get(c.Request.Context(), c.Param("reference"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": claim})
}

type updateClaimRequest struct {
	StatusID      *int    `json:"statusId"`
	VetsName      *string `json:"vetsName"`
	VetRCVSNumber *string `json:"vetRCVSNumber"`
	DateOfVisit   *string `json:"dateOfVisit"`
	UpdatedBy     string  `json:"updatedBy"`
}

func (s *Server) UpdateClaim(c *gin.Context) {
	var req updateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	claim, err := s.claimSvc.Update(c.Request.Context(), claimdomain.UpdateRequest{
		Reference:     c.Param("reference"),
		UpdatedBy:     req.UpdatedBy,
		StatusID:      req.StatusID,
		VetsName:      req.VetsName,
		VetRCVSNumber: req.VetRCVSNumber,
		DateOfVisit:   req.DateOfVisit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": claim})
}

func (s *Server) ListApplicationClaims(c *gin.Context) {
	var (
		claims []claimdomain.Claim
		err    error
	)
	if raw := c.Query("species"); raw != "" {
		species := claimdomain.Species(raw)
		if !species.Valid() {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		claims, err = s.claimSvc.ListByApplicationAndSpecies(c.Request.Context(), c.Param("reference"), species)
	} else {
		claims, err = s.claimSvc.ListByApplication(c.Request.Context(), c.Param("reference"))
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": claims})
}

// speciesLabel pulls the species out of an unvalidated data bag for the
// rejection counter. Unknown species keep the label set bounded.
func speciesLabel(raw json.RawMessage) string {
	var probe struct {
		TypeOfLivestock claimdomain.Species `json:"typeOfLivestock"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || !probe.TypeOfLivestock.Valid() {
		return "unknown"
	}
	return string(probe.TypeOfLivestock)
}
