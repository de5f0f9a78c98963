package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerProfileShowRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /profile-show/get", RequireAuth(verifier, http.HandlerFunc(handler.GetProfileShow)))
	mux.Handle("POST /profile-show/update", RequireAuth(verifier, http.HandlerFunc(handler.UpdateProfileShow)))
}

func registerWorkExperienceRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /work-experience/get", RequireAuth(verifier, http.HandlerFunc(handler.GetWorkHistory)))
	mux.Handle("POST /work-experience/replace", RequireAuth(verifier, http.HandlerFunc(handler.ReplaceWorkHistory)))
	mux.Handle("GET /work-experience/list", RequireAuth(verifier, http.HandlerFunc(handler.ListWorkExperience)))
	mux.Handle("POST /work-experience/add", RequireAuth(verifier, http.HandlerFunc(handler.AddWorkExperience)))
	mux.Handle("POST /work-experience/update", RequireAuth(verifier, http.HandlerFunc(handler.UpdateWorkExperience)))
	mux.Handle("POST /work-experience/delete", RequireAuth(verifier, http.HandlerFunc(handler.DeleteWorkExperience)))
	mux.Handle("POST /work-experience/delete-all", RequireAuth(verifier, http.HandlerFunc(handler.DeleteAllWorkExperience)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/profile-show/bootstrap", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunProfileShowBootstrapJob)))
}
