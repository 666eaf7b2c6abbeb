package backendtest

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	ctxUserID = "user_id"
	ctxToken  = "token"
)

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

func bearer(header string) (string, error) {
	if len(header) > 7 && header[:7] == "Bearer " {
		return header[7:], nil
	}
	return "", errors.New("invalid authorization header format")
}

func (b *Backend) authenticate(c *gin.Context) {
	if b.authorize(c) {
		c.Next()
	}
}

// authorize resolves the bearer token into the caller. On failure the
// request is aborted with 401.
func (b *Backend) authorize(c *gin.Context) bool {
	header := c.GetHeader("Authorization")
	if header == "" {
		fail(c, http.StatusUnauthorized, "authorization header is required")
		return false
	}
	token, err := bearer(header)
	if err != nil {
		fail(c, http.StatusUnauthorized, err.Error())
		return false
	}

	b.mu.Lock()
	userID, ok := b.sessions[token]
	_, exists := b.accounts[userID]
	fixed := token == b.FixedToken
	b.mu.Unlock()

	if !ok || !exists {
		fail(c, http.StatusUnauthorized, "token expired")
		return false
	}
	if !fixed {
		if _, err := userIDFromToken(token, b.secret); err != nil {
			fail(c, http.StatusUnauthorized, "invalid token")
			return false
		}
	}

	c.Set(ctxUserID, userID)
	c.Set(ctxToken, token)
	return true
}

func (b *Backend) caller(c *gin.Context) models.User {
	id := c.GetInt64(ctxUserID)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accounts[id].user
}

func (b *Backend) requireAdmin(c *gin.Context) {
	if b.admin(c) {
		c.Next()
	}
}

func (b *Backend) admin(c *gin.Context) bool {
	if !b.caller(c).IsAdmin {
		fail(c, http.StatusForbidden, "admins only")
		return false
	}
	return true
}

func (b *Backend) selfOrAdmin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if u := b.caller(c); u.ID != id && !u.IsAdmin {
		fail(c, http.StatusForbidden, "not allowed")
		return
	}
	c.Next()
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (b *Backend) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, acc := range b.accounts {
		if !strings.EqualFold(acc.user.Email, req.Email) {
			continue
		}
		if acc.hash == nil || bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil {
			break
		}
		if acc.user.Blocked {
			fail(c, http.StatusForbidden, "user is blocked")
			return
		}
		token, err := b.issue(acc.user.ID)
		if err != nil {
			fail(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, models.SignInResponse{Token: token, User: acc.user})
		return
	}
	fail(c, http.StatusBadRequest, "invalid email or password")
}

func (b *Backend) signOut(c *gin.Context) {
	token := c.GetString(ctxToken)
	b.mu.Lock()
	delete(b.sessions, token)
	b.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

type registerRequest struct {
	models.EmployeeForm
	Password string `json:"pass"`
}

// createUser is both self-registration (no token) and an admin adding an
// employee (token).
func (b *Backend) createUser(c *gin.Context) {
	if c.GetHeader("Authorization") != "" && (!b.authorize(c) || !b.admin(c)) {
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" {
		fail(c, http.StatusBadRequest, "email is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acc := range b.accounts {
		if strings.EqualFold(acc.user.Email, req.Email) {
			fail(c, http.StatusConflict, "user already exists")
			return
		}
	}
	u := b.addUserLocked(models.User{
		Email: req.Email, Firstname: req.Firstname, Lastname: req.Lastname,
		INN: req.INN, Phone: req.Phone, Blocked: req.Blocked, Avatar: req.Avatar,
	}, req.Password)
	c.JSON(http.StatusCreated, u)
}

func (b *Backend) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, b.caller(c))
}

func (b *Backend) updateProfile(c *gin.Context) {
	var req models.ProfileForm
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	id := c.GetInt64(ctxUserID)

	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.accounts[id]
	acc.user.Email, acc.user.Firstname, acc.user.Lastname = req.Email, req.Firstname, req.Lastname
	acc.user.INN, acc.user.Phone = req.INN, req.Phone
	c.JSON(http.StatusOK, acc.user)
}

type passwordRequest struct {
	ID       int64  `json:"id"`
	Password string `json:"password"`
}

func (b *Backend) changePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	if len(req.Password) < 6 {
		fail(c, http.StatusBadRequest, "password is too short")
		return
	}
	if u := b.caller(c); u.ID != req.ID && !u.IsAdmin {
		fail(c, http.StatusForbidden, "not allowed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[req.ID]
	if !ok {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	acc.hash = hash
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func inRange(date, start, end string) bool {
	if start == "" || end == "" {
		return true
	}
	if len(date) > 10 {
		date = date[:10]
	}
	return date >= start && date <= end
}

func (b *Backend) listOrders(c *gin.Context) {
	start, end := c.Query("startDate"), c.Query("endDate")
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Order, 0, len(b.orders))
	for _, o := range b.orders {
		if inRange(o.Date, start, end) {
			out = append(out, o)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (b *Backend) orderDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.details[id]
	if !ok {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (b *Backend) updateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.Order
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	req.ID = id

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, o := range b.orders {
		if o.ID == id {
			b.orders[i] = req
			c.JSON(http.StatusOK, req)
			return
		}
	}
	fail(c, http.StatusNotFound, "order not found")
}

func (b *Backend) deleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, o := range b.orders {
		if o.ID == id {
			b.orders = append(b.orders[:i], b.orders[i+1:]...)
			delete(b.details, id)
			c.JSON(http.StatusOK, gin.H{"message": "deleted"})
			return
		}
	}
	fail(c, http.StatusNotFound, "order not found")
}

func (b *Backend) listAssembly(c *gin.Context) {
	start, end := c.Query("startDate"), c.Query("endDate")
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.AssemblyOrder, 0, len(b.assembly))
	for _, o := range b.assembly {
		if inRange(o.DateDoc, start, end) {
			out = append(out, o)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (b *Backend) listCompleted(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]models.AssemblyOrder{}, b.completed...)
	c.JSON(http.StatusOK, out)
}

func (b *Backend) listReports(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]models.Report{}, b.reports...)
	c.JSON(http.StatusOK, out)
}

func (b *Backend) listUsers(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.User, 0, len(b.accounts))
	for id := int64(1); id < b.nextID; id++ {
		if acc, ok := b.accounts[id]; ok {
			out = append(out, acc.user)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (b *Backend) updateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.EmployeeForm
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, found := b.accounts[id]
	if !found {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	u := &acc.user
	u.Email, u.Firstname, u.Lastname, u.Phone, u.INN = req.Email, req.Firstname, req.Lastname, req.Phone, req.INN
	u.Blocked = req.Blocked
	if req.Avatar != "" {
		u.Avatar = req.Avatar
	}
	c.JSON(http.StatusOK, *u)
}

func (b *Backend) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.accounts[id]; !found {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	delete(b.accounts, id)
	for token, uid := range b.sessions {
		if uid == id {
			delete(b.sessions, token)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (b *Backend) blockUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, found := b.accounts[id]
	if !found {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	acc.user.Blocked = req.Blocked
	c.JSON(http.StatusOK, acc.user)
}

func (b *Backend) uploadAvatar(c *gin.Context) {
	id, _ := pathID(c)
	fh, err := c.FormFile("avatar")
	if err != nil {
		fail(c, http.StatusBadRequest, "avatar file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		fail(c, http.StatusBadRequest, "please upload an image")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, found := b.accounts[id]
	if !found {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	acc.user.Avatar = "/static/avatars/" + strconv.FormatInt(id, 10) + filepath.Ext(fh.Filename)
	c.JSON(http.StatusOK, models.AvatarResponse{AvatarURL: acc.user.Avatar})
}

func (b *Backend) deleteAvatar(c *gin.Context) {
	id, _ := pathID(c)
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, found := b.accounts[id]
	if !found {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	acc.user.Avatar = ""
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
