package handlers

import (
	"net/http"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/models"
	"github.com/Ebzefr/WebSecura/render"
)

// contactControl clears the form fields on success.
type contactControl struct {
	form *models.ContactRequest
}

func (c contactControl) Busy()       {}
func (c contactControl) Idle()       {}
func (c contactControl) ClearInput() { *c.form = models.ContactRequest{} }

func (s *Server) ContactPageHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, render.PageContact, s.pageData("Contact", models.ContactRequest{}), nil)
}

// ContactHandler validates and sends the contact form. Invalid input never
// reaches the backend.
func (s *Server) ContactHandler(w http.ResponseWriter, r *http.Request) {
	form := models.ContactRequest{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	}
	ack, err := core.SubmitContact(r.Context(), s.Client, form, contactControl{form: &form})
	data := s.pageData("Contact", form)
	if err != nil {
		data.Error = backend.UserMessage(err)
		s.renderPage(w, statusFor(err), render.PageContact, data, nil)
		return
	}
	data.Flash = ack
	s.renderPage(w, http.StatusOK, render.PageContact, data, nil)
}
