package handlers

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gizmocash/internal/domain"
	applog "gizmocash/internal/log"
	"gizmocash/internal/repos"
	"gizmocash/internal/services"
	"gizmocash/internal/sse"
	"gizmocash/internal/validate"
)

// AdminHandler serves the back-office: dashboard, lead and pickup
// queues, the activity trail, CSV exports and the live event stream.
type AdminHandler struct {
	Leads   *repos.LeadRepo
	Pickups *repos.PickupRepo
	Admins  *repos.AdminRepo
	Export  *services.ExportService
	Hub     *sse.Hub
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	leads, err := h.Leads.ListLatest(10)
	if err != nil {
		applog.Error(c, "admin.leads.fetch", err, nil)
	}
	pickups, err := h.Pickups.ListLatest(10)
	if err != nil {
		applog.Error(c, "admin.pickups.fetch", err, nil)
	}
	return render(c, "admin_dashboard", fiber.Map{"Leads": leads, "Pickups": pickups})
}

func (h *AdminHandler) LeadsPage(c *fiber.Ctx) error {
	leads, err := h.Leads.All()
	if err != nil {
		applog.Error(c, "admin.leads.fetch", err, nil)
	}
	return render(c, "admin_leads", fiber.Map{"Leads": leads, "Statuses": []string{
		domain.LeadNew, domain.LeadContacted, domain.LeadCompleted, domain.LeadRejected,
	}})
}

func (h *AdminHandler) UpdateLeadStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	if !okID || !domain.ValidLeadStatus(status) {
		applog.Security(c, "admin.lead.bad_status", map[string]any{"status": status})
		return c.Redirect("/admin/leads")
	}
	if err := h.Leads.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.lead.update", err, map[string]any{"lead_id": id})
		return c.Redirect("/admin/leads")
	}
	h.logActivity(c, "lead.status", fmt.Sprintf("%s -> %s", id, status))
	return c.Redirect("/admin/leads")
}

func (h *AdminHandler) PickupsPage(c *fiber.Ctx) error {
	pickups, err := h.Pickups.All()
	if err != nil {
		applog.Error(c, "admin.pickups.fetch", err, nil)
	}
	return render(c, "admin_pickups", fiber.Map{"Pickups": pickups, "Statuses": []string{
		domain.PickupPending, domain.PickupConfirmed, domain.PickupInTransit,
		domain.PickupCompleted, domain.PickupCancelled,
	}})
}

func (h *AdminHandler) UpdatePickupStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	if !okID || !domain.ValidPickupStatus(status) {
		applog.Security(c, "admin.pickup.bad_status", map[string]any{"status": status})
		return c.Redirect("/admin/pickups")
	}
	if err := h.Pickups.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.pickup.update", err, map[string]any{"pickup_id": id})
		return c.Redirect("/admin/pickups")
	}
	h.logActivity(c, "pickup.status", fmt.Sprintf("%s -> %s", id, status))
	return c.Redirect("/admin/pickups")
}

func (h *AdminHandler) ActivityPage(c *fiber.Ctx) error {
	logs, err := h.Admins.RecentActivity(200)
	if err != nil {
		applog.Error(c, "admin.activity.fetch", err, nil)
	}
	return render(c, "admin_activity", fiber.Map{"Logs": logs})
}

func (h *AdminHandler) ExportLeadsCSV(c *fiber.Ctx) error {
	h.logActivity(c, "export.leads", "")
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="leads.csv"`)
	if err := h.Export.WriteLeadsCSV(c.Response().BodyWriter()); err != nil {
		applog.Error(c, "admin.export.leads", err, nil)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return nil
}

func (h *AdminHandler) ExportPickupsCSV(c *fiber.Ctx) error {
	h.logActivity(c, "export.pickups", "")
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pickups.csv"`)
	if err := h.Export.WritePickupsCSV(c.Response().BodyWriter()); err != nil {
		applog.Error(c, "admin.export.pickups", err, nil)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return nil
}

// Events streams lead/pickup notifications to the admin dashboard. The
// keepalive comment line lets proxies and the browser detect a dead
// connection; the stream ends when the write fails.
func (h *AdminHandler) Events(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	client := &sse.Client{ID: uuid.NewString(), Events: make(chan sse.Event, 16)}
	h.Hub.Register(client)
	hub := h.Hub

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer hub.Unregister(client.ID)
		keepalive := time.NewTicker(25 * time.Second)
		defer keepalive.Stop()
		for {
			select {
			case ev, ok := <-client.Events:
				if !ok {
					return
				}
				if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, ev.Data); err != nil {
					return
				}
			case <-keepalive.C:
				if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
					return
				}
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
	return nil
}

func (h *AdminHandler) logActivity(c *fiber.Ctx, action, detail string) {
	sess := adminSession(c)
	if sess == nil {
		return
	}
	if err := h.Admins.LogActivity(sess.Admin.ID, action, detail); err != nil {
		applog.Error(c, "admin.activity.write", err, map[string]any{"action": action})
	}
}
