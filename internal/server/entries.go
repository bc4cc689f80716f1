// ABOUTME: Handlers for waste entries, meals and photo analysis.
// ABOUTME: Images arrive as a multipart "image" file or a base64 data URL in JSON.
package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/ecoeats/internal/media"
	"github.com/harperreed/ecoeats/internal/tracker"
)

type wasteRequest struct {
	Item         string `json:"item" binding:"required"`
	Quantity     int    `json:"quantity"`
	QuantityType string `json:"quantity_type"`
	Image        string `json:"image"`
}

type mealRequest struct {
	Meal     string `json:"meal" binding:"required"`
	Quantity *int   `json:"quantity"`
	Image    string `json:"image"`
}

type imageRequest struct {
	Image string `json:"image" binding:"required"`
}

// uploadedImage reads the request image from a multipart file or JSON body.
func uploadedImage(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if err != nil {
			return nil, fmt.Errorf("%w: image file is required", tracker.ErrInvalid)
		}
		if fh.Size > media.MaxImageBytes {
			return nil, fmt.Errorf("%w: %w", tracker.ErrInvalid, media.ErrTooLarge)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, media.MaxImageBytes+1))
	}

	var in imageRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", tracker.ErrInvalid, err)
	}
	return decodeImage(in.Image)
}

func decodeImage(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	data, err := media.DecodeDataURL(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tracker.ErrInvalid, err)
	}
	return data, nil
}

func (s *Server) listWaste(c *gin.Context) {
	limit, ok := limitQuery(c)
	if !ok {
		return
	}
	entries, err := s.tracker.ListWaste(userID(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"waste": entries})
}

func (s *Server) createWaste(c *gin.Context) {
	var in wasteRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	img, err := decodeImage(in.Image)
	if err != nil {
		fail(c, err)
		return
	}

	w, err := s.tracker.LogWaste(c.Request.Context(), userID(c), tracker.WasteInput{
		Item:         in.Item,
		Quantity:     in.Quantity,
		QuantityType: in.QuantityType,
		Image:        img,
	})
	if err != nil {
		fail(c, err)
		return
	}
	w.Image = nil
	c.JSON(http.StatusCreated, w)
}

func (s *Server) getWaste(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	w, err := s.tracker.GetWaste(c.Request.Context(), userID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	w.Image = nil
	c.JSON(http.StatusOK, w)
}

func (s *Server) wasteImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	w, err := s.tracker.GetWaste(c.Request.Context(), userID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	writeImage(c, w.Image)
}

func (s *Server) deleteWaste(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.tracker.DeleteWaste(userID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) analyzeWaste(c *gin.Context) {
	img, err := uploadedImage(c)
	if err != nil {
		fail(c, err)
		return
	}
	a, err := s.tracker.AnalyzeWaste(c.Request.Context(), img)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) listMeals(c *gin.Context) {
	limit, ok := limitQuery(c)
	if !ok {
		return
	}
	meals, err := s.tracker.ListMeals(userID(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (s *Server) createMeal(c *gin.Context) {
	var in mealRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	img, err := decodeImage(in.Image)
	if err != nil {
		fail(c, err)
		return
	}

	m, err := s.tracker.LogMeal(c.Request.Context(), userID(c), tracker.MealInput{
		Description: in.Meal,
		Quantity:    in.Quantity,
		Image:       img,
	})
	if err != nil {
		fail(c, err)
		return
	}
	m.Image = nil
	c.JSON(http.StatusCreated, m)
}

func (s *Server) getMeal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	m, err := s.tracker.GetMeal(c.Request.Context(), userID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	m.Image = nil
	c.JSON(http.StatusOK, m)
}

func (s *Server) mealImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	m, err := s.tracker.GetMeal(c.Request.Context(), userID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	writeImage(c, m.Image)
}

func (s *Server) deleteMeal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.tracker.DeleteMeal(userID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) analyzeMeal(c *gin.Context) {
	img, err := uploadedImage(c)
	if err != nil {
		fail(c, err)
		return
	}
	a, err := s.tracker.AnalyzeMeal(c.Request.Context(), img)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) analyzeGrocery(c *gin.Context) {
	img, err := uploadedImage(c)
	if err != nil {
		fail(c, err)
		return
	}
	text, err := s.tracker.AnalyzeGroceryList(c.Request.Context(), img)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": text})
}

func writeImage(c *gin.Context, data []byte) {
	if len(data) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "entry has no image"})
		return
	}
	ct, err := media.DetectType(data)
	if err != nil {
		ct = "application/octet-stream"
	}
	c.Data(http.StatusOK, ct, data)
}
