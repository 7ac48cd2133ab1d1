package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scentbase/perfume-catalog-api/internal/database"
	"github.com/scentbase/perfume-catalog-api/internal/models"
	"github.com/scentbase/perfume-catalog-api/internal/repository"
	"github.com/scentbase/perfume-catalog-api/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TagHandlerTestSuite defines the test suite for NoteHandler and
// DesignerHandler
type TagHandlerTestSuite struct {
	suite.Suite
	db              *gorm.DB
	noteHandler     *NoteHandler
	designerHandler *DesignerHandler
}

// SetupTest runs before each test
func (suite *TagHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	// Run migrations
	suite.Require().NoError(database.MigrateDatabase(suite.db))

	// Set the test DB as the default database
	database.SetDB(suite.db)

	noteService := services.NewTagService(repository.NewNoteRepository(suite.db))
	designerService := services.NewTagService(repository.NewDesignerRepository(suite.db))
	suite.noteHandler = NewNoteHandler(noteService)
	suite.designerHandler = NewDesignerHandler(designerService)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TagHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TagHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

func (suite *TagHandlerTestSuite) createTestPerfume(title string, userID uint64) *models.Perfume {
	perfume := &models.Perfume{
		UserID:        userID,
		Title:         title,
		Rating:        decimal.RequireFromString("7.5"),
		NumberOfVotes: 10,
		Gender:        models.GenderFemale,
		Longevity:     decimal.RequireFromString("6.5"),
		Sillage:       decimal.RequireFromString("5.25"),
		PriceValue:    decimal.RequireFromString("4.75"),
	}
	suite.db.Create(perfume)
	return perfume
}

func (suite *TagHandlerTestSuite) createTestNote(name string, noteType int) *models.Note {
	note := &models.Note{Name: name, Type: noteType}
	suite.db.Create(note)
	return note
}

func (suite *TagHandlerTestSuite) createTestDesigner(name string) *models.Designer {
	designer := &models.Designer{Name: name}
	suite.db.Create(designer)
	return designer
}

func (suite *TagHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// TestListNotes_OrderedByNameDescending tests the listing order
func (suite *TagHandlerTestSuite) TestListNotes_OrderedByNameDescending() {
	user := suite.createTestUser("test@example.com")
	suite.createTestNote("Amber", 2)
	suite.createTestNote("Citrus", 0)
	suite.createTestNote("Bergamot", 0)

	c, w := suite.createAuthContext("GET", "/api/notes", nil, user.ID)

	suite.noteHandler.ListNotes(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response, 3)
	assert.Equal(suite.T(), "Citrus", response[0]["name"])
	assert.Equal(suite.T(), "Bergamot", response[1]["name"])
	assert.Equal(suite.T(), "Amber", response[2]["name"])
}

// TestListNotes_AssignedOnly tests filtering to notes attached to at least
// one perfume, with no duplicates for multiple assignments
func (suite *TagHandlerTestSuite) TestListNotes_AssignedOnly() {
	user := suite.createTestUser("test@example.com")
	assigned := suite.createTestNote("Vanilla", 2)
	suite.createTestNote("Orphan", 0)

	first := suite.createTestPerfume("First", user.ID)
	second := suite.createTestPerfume("Second", user.ID)
	suite.db.Create(&models.PerfumeNote{PerfumeID: first.ID, NoteID: assigned.ID})
	suite.db.Create(&models.PerfumeNote{PerfumeID: second.ID, NoteID: assigned.ID})

	c, w := suite.createAuthContext("GET", "/api/notes?assigned_only=1", nil, user.ID)

	suite.noteHandler.ListNotes(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response, 1)
	assert.Equal(suite.T(), "Vanilla", response[0]["name"])
}

// TestListNotes_AssignedOnlyFalsyValues tests that anything except "1"
// leaves the listing unfiltered
func (suite *TagHandlerTestSuite) TestListNotes_AssignedOnlyFalsyValues() {
	user := suite.createTestUser("test@example.com")
	suite.createTestNote("Orphan", 0)

	for _, value := range []string{"0", "true", "yes", ""} {
		c, w := suite.createAuthContext("GET", "/api/notes?assigned_only="+value, nil, user.ID)

		suite.noteHandler.ListNotes(c)

		assert.Equal(suite.T(), http.StatusOK, w.Code)

		var response []map[string]interface{}
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(suite.T(), response, 1, "assigned_only=%q should not filter", value)
	}
}

// TestCreateNote_Success tests note creation, including the zero type value
func (suite *TagHandlerTestSuite) TestCreateNote_Success() {
	user := suite.createTestUser("test@example.com")

	body, _ := json.Marshal(map[string]interface{}{"name": "Bergamot", "type": 0})
	c, w := suite.createAuthContext("POST", "/api/notes", body, user.ID)

	suite.noteHandler.CreateNote(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Bergamot", response["name"])
	assert.EqualValues(suite.T(), 0, response["type"])
	assert.NotZero(suite.T(), response["id"])
}

// TestCreateNote_MissingType tests that omitting the type fails validation
func (suite *TagHandlerTestSuite) TestCreateNote_MissingType() {
	user := suite.createTestUser("test@example.com")

	body, _ := json.Marshal(map[string]interface{}{"name": "Bergamot"})
	c, w := suite.createAuthContext("POST", "/api/notes", body, user.ID)

	suite.noteHandler.CreateNote(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateNote_DuplicateTuple tests the uniqueness constraint over the
// full field set
func (suite *TagHandlerTestSuite) TestCreateNote_DuplicateTuple() {
	user := suite.createTestUser("test@example.com")
	suite.createTestNote("Rose", 1)

	body, _ := json.Marshal(map[string]interface{}{"name": "Rose", "type": 1})
	c, w := suite.createAuthContext("POST", "/api/notes", body, user.ID)

	suite.noteHandler.CreateNote(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestCreateNote_SameNameDifferentType tests that only the full tuple is
// unique, not the name alone
func (suite *TagHandlerTestSuite) TestCreateNote_SameNameDifferentType() {
	user := suite.createTestUser("test@example.com")
	suite.createTestNote("Rose", 0)

	body, _ := json.Marshal(map[string]interface{}{"name": "Rose", "type": 1})
	c, w := suite.createAuthContext("POST", "/api/notes", body, user.ID)

	suite.noteHandler.CreateNote(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

// TestCreateNote_BlankName tests that a whitespace name is rejected
func (suite *TagHandlerTestSuite) TestCreateNote_BlankName() {
	user := suite.createTestUser("test@example.com")

	body, _ := json.Marshal(map[string]interface{}{"name": "   ", "type": 0})
	c, w := suite.createAuthContext("POST", "/api/notes", body, user.ID)

	suite.noteHandler.CreateNote(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var count int64
	suite.db.Model(&models.Note{}).Count(&count)
	assert.EqualValues(suite.T(), 0, count)
}

// TestUpdateNote_Rename tests a partial update
func (suite *TagHandlerTestSuite) TestUpdateNote_Rename() {
	user := suite.createTestUser("test@example.com")
	note := suite.createTestNote("Amber", 2)

	body, _ := json.Marshal(map[string]interface{}{"name": "Grey Amber"})
	c, w := suite.createAuthContext("PATCH", fmt.Sprintf("/api/notes/%d", note.ID), body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(note.ID)}}

	suite.noteHandler.UpdateNote(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Grey Amber", response["name"])
	assert.EqualValues(suite.T(), 2, response["type"])
}

// TestUpdateNote_DuplicateTuple tests that renaming onto an existing tuple
// conflicts
func (suite *TagHandlerTestSuite) TestUpdateNote_DuplicateTuple() {
	user := suite.createTestUser("test@example.com")
	suite.createTestNote("Amber", 2)
	note := suite.createTestNote("Citrus", 2)

	body, _ := json.Marshal(map[string]interface{}{"name": "Amber"})
	c, w := suite.createAuthContext("PATCH", fmt.Sprintf("/api/notes/%d", note.ID), body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(note.ID)}}

	suite.noteHandler.UpdateNote(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestUpdateNote_NotFound tests the unknown id case
func (suite *TagHandlerTestSuite) TestUpdateNote_NotFound() {
	user := suite.createTestUser("test@example.com")

	body, _ := json.Marshal(map[string]interface{}{"name": "Ghost"})
	c, w := suite.createAuthContext("PATCH", "/api/notes/999", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	suite.noteHandler.UpdateNote(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateNote_InvalidID tests the malformed path parameter case
func (suite *TagHandlerTestSuite) TestUpdateNote_InvalidID() {
	user := suite.createTestUser("test@example.com")

	body, _ := json.Marshal(map[string]interface{}{"name": "Ghost"})
	c, w := suite.createAuthContext("PATCH", "/api/notes/abc", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	suite.noteHandler.UpdateNote(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestReplaceNote_Success tests the full-update contract
func (suite *TagHandlerTestSuite) TestReplaceNote_Success() {
	user := suite.createTestUser("test@example.com")
	note := suite.createTestNote("Amber", 2)

	body, _ := json.Marshal(map[string]interface{}{"name": "Ambergris", "type": 1})
	c, w := suite.createAuthContext("PUT", fmt.Sprintf("/api/notes/%d", note.ID), body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(note.ID)}}

	suite.noteHandler.ReplaceNote(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Ambergris", response["name"])
	assert.EqualValues(suite.T(), 1, response["type"])
}

// TestDeleteNote_DetachesFromPerfumes tests that deleting a note also
// removes its assignments
func (suite *TagHandlerTestSuite) TestDeleteNote_DetachesFromPerfumes() {
	user := suite.createTestUser("test@example.com")
	note := suite.createTestNote("Leather", 2)
	perfume := suite.createTestPerfume("Wearing It", user.ID)
	suite.db.Create(&models.PerfumeNote{PerfumeID: perfume.ID, NoteID: note.ID})

	c, w := suite.createAuthContext("DELETE", fmt.Sprintf("/api/notes/%d", note.ID), nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(note.ID)}}

	suite.noteHandler.DeleteNote(c)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	var noteCount, joinCount, perfumeCount int64
	suite.db.Model(&models.Note{}).Count(&noteCount)
	suite.db.Model(&models.PerfumeNote{}).Count(&joinCount)
	suite.db.Model(&models.Perfume{}).Count(&perfumeCount)
	assert.EqualValues(suite.T(), 0, noteCount)
	assert.EqualValues(suite.T(), 0, joinCount)
	assert.EqualValues(suite.T(), 1, perfumeCount)
}

// TestDeleteNote_NotFound tests the unknown id case
func (suite *TagHandlerTestSuite) TestDeleteNote_NotFound() {
	user := suite.createTestUser("test@example.com")

	c, w := suite.createAuthContext("DELETE", "/api/notes/999", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	suite.noteHandler.DeleteNote(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestListDesigners_AssignedOnly tests the designer side of the filter
func (suite *TagHandlerTestSuite) TestListDesigners_AssignedOnly() {
	user := suite.createTestUser("test@example.com")
	assigned := suite.createTestDesigner("Chanel")
	suite.createTestDesigner("Orphan House")

	perfume := suite.createTestPerfume("Flagship", user.ID)
	suite.db.Create(&models.PerfumeDesigner{PerfumeID: perfume.ID, DesignerID: assigned.ID})

	c, w := suite.createAuthContext("GET", "/api/designers?assigned_only=1", nil, user.ID)

	suite.designerHandler.ListDesigners(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response, 1)
	assert.Equal(suite.T(), "Chanel", response[0]["name"])
}

// TestCreateDesigner_Success tests designer creation
func (suite *TagHandlerTestSuite) TestCreateDesigner_Success() {
	user := suite.createTestUser("test@example.com")

	body, _ := json.Marshal(map[string]interface{}{"name": "Le Labo"})
	c, w := suite.createAuthContext("POST", "/api/designers", body, user.ID)

	suite.designerHandler.CreateDesigner(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Le Labo", response["name"])
	assert.NotZero(suite.T(), response["id"])
}

// TestCreateDesigner_Duplicate tests the designer name uniqueness
func (suite *TagHandlerTestSuite) TestCreateDesigner_Duplicate() {
	user := suite.createTestUser("test@example.com")
	suite.createTestDesigner("Chanel")

	body, _ := json.Marshal(map[string]interface{}{"name": "Chanel"})
	c, w := suite.createAuthContext("POST", "/api/designers", body, user.ID)

	suite.designerHandler.CreateDesigner(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestUpdateDesigner_Rename tests a designer partial update
func (suite *TagHandlerTestSuite) TestUpdateDesigner_Rename() {
	user := suite.createTestUser("test@example.com")
	designer := suite.createTestDesigner("Gucci")

	body, _ := json.Marshal(map[string]interface{}{"name": "Gucci Beauty"})
	c, w := suite.createAuthContext("PATCH", fmt.Sprintf("/api/designers/%d", designer.ID), body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(designer.ID)}}

	suite.designerHandler.UpdateDesigner(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Gucci Beauty", response["name"])
}

// TestDeleteDesigner_DetachesFromPerfumes tests the designer delete path
func (suite *TagHandlerTestSuite) TestDeleteDesigner_DetachesFromPerfumes() {
	user := suite.createTestUser("test@example.com")
	designer := suite.createTestDesigner("Armani")
	perfume := suite.createTestPerfume("Wearing It", user.ID)
	suite.db.Create(&models.PerfumeDesigner{PerfumeID: perfume.ID, DesignerID: designer.ID})

	c, w := suite.createAuthContext("DELETE", fmt.Sprintf("/api/designers/%d", designer.ID), nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(designer.ID)}}

	suite.designerHandler.DeleteDesigner(c)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	var designerCount, joinCount int64
	suite.db.Model(&models.Designer{}).Count(&designerCount)
	suite.db.Model(&models.PerfumeDesigner{}).Count(&joinCount)
	assert.EqualValues(suite.T(), 0, designerCount)
	assert.EqualValues(suite.T(), 0, joinCount)
}

// TestTagHandlerTestSuite runs the test suite
func TestTagHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TagHandlerTestSuite))
}
