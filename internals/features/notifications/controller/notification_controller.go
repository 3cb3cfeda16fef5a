// internals/features/notifications/controller/notification_controller.go
package controller

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	libModel "librarydesk_backend/internals/features/libraries/model"
	notifDTO "librarydesk_backend/internals/features/notifications/dto"
	svc "librarydesk_backend/internals/features/notifications/service"
	stuModel "librarydesk_backend/internals/features/students/model"
	stuSvc "librarydesk_backend/internals/features/students/service"
	helper "librarydesk_backend/internals/helpers"
	authmw "librarydesk_backend/internals/middlewares/auth"
)

type NotificationController struct {
	DB       *gorm.DB
	Validate *validator.Validate

	mu       sync.Mutex
	sessions map[uuid.UUID]*dispatchSession
}

// dispatchSession keeps one in-flight bulk send per library. The opener and
// clipboard collect what the client UI must actually open or paste; the
// backend never reaches the channel itself.
type dispatchSession struct {
	orch      *svc.Orchestrator
	opener    *collectOpener
	clipboard *collectClipboard
}

type collectOpener struct{ urls []string }

func (co *collectOpener) Open(url string) error {
	co.urls = append(co.urls, url)
	return nil
}

func (co *collectOpener) drain() []string {
	out := co.urls
	co.urls = nil
	return out
}

type collectClipboard struct{ text string }

func (cc *collectClipboard) Copy(text string) error {
	cc.text = text
	return nil
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{
		DB:       db,
		Validate: helper.Validator(),
		sessions: make(map[uuid.UUID]*dispatchSession),
	}
}

/* ===================== SINGLE ===================== */

// POST /api/notifications/send
func (ctl *NotificationController) Send(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req notifDTO.SendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Student ID is not valid")
	}

	var m stuModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("student_id = ? AND student_library_id = ? AND student_is_active = TRUE", studentID, libID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}

	intent, err := svc.ComposeSingle(svc.Recipient{
		StudentID: m.StudentID,
		Name:      m.StudentName,
		Phone:     m.StudentPhone,
	}, req.Message)
	if err != nil {
		var ipe *svc.InvalidPhoneError
		if errors.As(err, &ipe) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, ipe.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compose message")
	}

	return helper.JsonOK(c, "Message link is ready", fiber.Map{"notification": intent})
}

/* ===================== BULK ===================== */

// POST /api/notifications/bulk composes the batch and opens a dispatch session.
// The follow-up strategy call decides how the links leave the screen.
func (ctl *NotificationController) Bulk(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req notifDTO.BulkNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	lang := svc.NormalizeLanguage(req.Language)

	students, err := ctl.listActive(c, libID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}
	if len(students) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "No active students to message")
	}

	batch := svc.ComposeBulk(recipientsOf(students), req.Message, nil)

	sess := &dispatchSession{
		opener:    &collectOpener{},
		clipboard: &collectClipboard{},
	}
	sess.orch = svc.NewOrchestrator(sess.opener, sess.clipboard)
	if err := sess.orch.Begin(batch); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start dispatch session")
	}

	ctl.mu.Lock()
	ctl.sessions[libID] = sess
	ctl.mu.Unlock()

	log.Printf("[Notification.Bulk] library=%s recipients=%d skipped=%d", libID, len(batch.Intents), len(batch.Skipped))
	return helper.JsonOK(c, "Bulk message composed", notifDTO.NewBulkComposeResponse(batch, lang, sess.orch.State()))
}

// POST /api/notifications/bulk/strategy
func (ctl *NotificationController) SelectStrategy(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req notifDTO.SelectStrategyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	sess, ok := ctl.session(libID)
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "No bulk message in progress. Compose one first.")
	}

	strategy, err := sess.orch.SelectStrategy(req.Choice)
	if err != nil {
		return ctl.writeDispatchError(c, err)
	}

	resp := notifDTO.StrategyResponse{Strategy: string(strategy)}
	switch strategy {
	case svc.StrategySequential:
		// open the first link right away, the rest stay queued
		first, openErr := sess.orch.OpenNext()
		if openErr != nil {
			log.Printf("[Notification.Strategy] first open: %v", openErr)
		}
		resp.Opened = []svc.MessageIntent{first}
		resp.Remaining = sess.orch.Remaining()
	case svc.StrategyBroadcast:
		instr, err := sess.orch.BroadcastInstructions()
		if err != nil {
			return ctl.writeDispatchError(c, err)
		}
		resp.PhoneList = instr.PhoneList
		resp.Message = instr.Message
	case svc.StrategyManual:
		list, err := sess.orch.ManualList()
		if err != nil {
			return ctl.writeDispatchError(c, err)
		}
		resp.StudentList = list.StudentList
		resp.Message = list.Message
	}
	resp.DispatchState = string(sess.orch.State())
	sess.opener.drain()

	return helper.JsonOK(c, "", resp)
}

// POST /api/notifications/bulk/open-next
func (ctl *NotificationController) OpenNext(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sess, ok := ctl.session(libID)
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "No bulk message in progress. Compose one first.")
	}

	intent, err := sess.orch.OpenNext()
	if err != nil && (errors.Is(err, svc.ErrWrongState) || errors.Is(err, svc.ErrWrongStrategy) || errors.Is(err, svc.ErrQueueDrained)) {
		return ctl.writeDispatchError(c, err)
	}
	sess.opener.drain()

	return helper.JsonOK(c, "", notifDTO.StrategyResponse{
		Strategy:      string(sess.orch.Strategy()),
		DispatchState: string(sess.orch.State()),
		Opened:        []svc.MessageIntent{intent},
		Remaining:     sess.orch.Remaining(),
	})
}

// POST /api/notifications/bulk/open-all is paced, so large batches hold the
// request open for about a second per remaining link.
func (ctl *NotificationController) OpenAll(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sess, ok := ctl.session(libID)
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "No bulk message in progress. Compose one first.")
	}

	results, err := sess.orch.OpenAll()
	if err != nil {
		return ctl.writeDispatchError(c, err)
	}
	opened := make([]svc.MessageIntent, 0, len(results))
	for _, r := range results {
		opened = append(opened, r.Intent)
	}
	sess.opener.drain()

	return helper.JsonOK(c, "", notifDTO.StrategyResponse{
		Strategy:      string(sess.orch.Strategy()),
		DispatchState: string(sess.orch.State()),
		Opened:        opened,
	})
}

// POST /api/notifications/bulk/cancel
func (ctl *NotificationController) Cancel(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sess, ok := ctl.session(libID)
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "No bulk message in progress. Compose one first.")
	}
	if err := sess.orch.Cancel(); err != nil {
		return ctl.writeDispatchError(c, err)
	}
	return helper.JsonOK(c, "Bulk message cancelled", fiber.Map{"dispatch_state": string(sess.orch.State())})
}

/* ===================== EXPIRY SCAN ===================== */

// POST /api/notifications/check-expiry classifies every active membership and
// composes reminders for today's and tomorrow's expiries, plus one summary
// intent addressed to the owner.
func (ctl *NotificationController) CheckExpiry(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req notifDTO.CheckExpiryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
		}
	}
	lang := svc.NormalizeLanguage(req.Language)

	var lib libModel.LibraryModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("library_id = ?", libID).First(&lib).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Library not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load library")
	}
	students, err := ctl.listActive(c, libID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}

	scan := stuSvc.ScanExpiring(students, time.Now())
	for _, scanErr := range scan.Errors {
		log.Printf("[Notification.CheckExpiry] library=%s %v", libID, scanErr)
	}

	intents := make([]svc.MessageIntent, 0, scan.TotalExpiring()+1)
	appendReminders := func(bucket []stuModel.StudentModel, expiresToday bool) {
		for i := range bucket {
			s := &bucket[i]
			body := svc.ExpiryReminderBody(lang, s.StudentName, lib.LibraryName,
				s.EndDateTime().Format("2006-01-02"), expiresToday)
			intent, err := svc.ComposeSingle(svc.Recipient{
				StudentID: s.StudentID,
				Name:      s.StudentName,
				Phone:     s.StudentPhone,
			}, body)
			if err != nil {
				log.Printf("[Notification.CheckExpiry] skip %s: %v", s.StudentID, err)
				continue
			}
			intents = append(intents, intent)
		}
	}
	appendReminders(scan.ExpiredToday, true)
	appendReminders(scan.ExpiringTomorrow, false)

	if scan.TotalExpiring() > 0 {
		summary := svc.OwnerExpirySummaryBody(lang, lib.LibraryName,
			len(scan.ExpiredToday), len(scan.ExpiringTomorrow))
		if ownerIntent, err := svc.ComposeSingle(svc.Recipient{
			Name:  lib.LibraryOwnerName,
			Phone: lib.LibraryOwnerPhone,
		}, summary); err == nil {
			ownerIntent.IsOwnerNotification = true
			intents = append(intents, ownerIntent)
		} else {
			log.Printf("[Notification.CheckExpiry] owner intent: %v", err)
		}
	}

	return helper.JsonOK(c, "", notifDTO.CheckExpiryResponse{
		TotalExpiring:    scan.TotalExpiring(),
		ExpiredToday:     len(scan.ExpiredToday),
		ExpiringTomorrow: len(scan.ExpiringTomorrow),
		WhatsAppURLs:     intents,
	})
}

/* ===================== HELPERS ===================== */

func (ctl *NotificationController) session(libID uuid.UUID) (*dispatchSession, bool) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	sess, ok := ctl.sessions[libID]
	return sess, ok
}

func (ctl *NotificationController) listActive(c *fiber.Ctx, libID uuid.UUID) ([]stuModel.StudentModel, error) {
	var rows []stuModel.StudentModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("student_library_id = ? AND student_is_active = TRUE", libID).
		Order("student_seat_number ASC").
		Find(&rows).Error
	return rows, err
}

func recipientsOf(students []stuModel.StudentModel) []svc.Recipient {
	out := make([]svc.Recipient, 0, len(students))
	for i := range students {
		out = append(out, svc.Recipient{
			StudentID: students[i].StudentID,
			Name:      students[i].StudentName,
			Phone:     students[i].StudentPhone,
		})
	}
	return out
}

func (ctl *NotificationController) writeDispatchError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, svc.ErrUnknownStrategy):
		return helper.JsonError(c, fiber.StatusBadRequest, "Choose method 1, 2 or 3")
	case errors.Is(err, svc.ErrEmptyBatch):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "No valid phone numbers in this batch")
	case errors.Is(err, svc.ErrQueueDrained):
		return helper.JsonError(c, fiber.StatusConflict, "All messages in this batch are already dispatched")
	case errors.Is(err, svc.ErrWrongStrategy), errors.Is(err, svc.ErrWrongState):
		return helper.JsonError(c, fiber.StatusConflict, "This action does not match the current dispatch step")
	}
	log.Printf("[Notification.Dispatch] %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Dispatch failed")
}
