package client_test

import (
	"testing"

	"github.com/amirasaad/bankoffice/pkg/notify"
	"github.com/amirasaad/bankoffice/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

const clientsPath = "/api/v1/clients"

type ClientTestSuite struct {
	suite.Suite
	app *testutils.TestApp
}

func (s *ClientTestSuite) SetupTest() {
	s.app = testutils.NewTestApp(s.T())
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) get(dni string) map[string]any {
	resp := s.app.Do(fiber.MethodGet, clientsPath+"/client/"+dni, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	return testutils.DataMap(s.T(), testutils.DecodeResponse(s.T(), resp))
}

func (s *ClientTestSuite) status(method, path string) int {
	resp := s.app.Do(method, path, "")
	resp.Body.Close() //nolint: errcheck
	return resp.StatusCode
}

func (s *ClientTestSuite) TestRegister() {
	number := s.app.RegisterClient(s.T(), "111", "Ana@Example.com")
	s.NotEmpty(number)

	data := s.get("111")
	s.Equal("PENDING", data["status"])
	s.Equal("ana@example.com", data["email"])
	s.NotContains(data, "password")
	s.NotContains(data, "passwordHash")

	sent := s.app.Notifier.Sent()
	s.Require().Len(sent, 1)
	s.Equal("ana@example.com", sent[0].To)
	s.Equal(notify.WelcomeSubject, sent[0].Subject)
	s.Contains(sent[0].Body, number)
	s.NotContains(sent[0].Body, "secret123")
}

func (s *ClientTestSuite) TestRegisterConflictsAndValidation() {
	s.app.RegisterClient(s.T(), "111", "ana@example.com")

	s.Run("Duplicate DNI", func() {
		resp := s.app.Do(fiber.MethodPost, clientsPath+"/client",
			`{"dni":"111","name":"Other","email":"other@example.com","password":"secret123"}`)
		s.Require().Equal(fiber.StatusConflict, resp.StatusCode)
		pd := testutils.DecodeProblem(s.T(), resp)
		s.Contains(pd.Detail, "111")
	})

	s.Run("Duplicate email", func() {
		resp := s.app.Do(fiber.MethodPost, clientsPath+"/client",
			`{"dni":"222","name":"Other","email":"ANA@example.com","password":"secret123"}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusConflict, resp.StatusCode)
	})

	s.Run("Invalid email", func() {
		resp := s.app.Do(fiber.MethodPost, clientsPath+"/client",
			`{"dni":"333","name":"Other","email":"not-an-email","password":"secret123"}`)
		s.Require().Equal(fiber.StatusBadRequest, resp.StatusCode)
		pd := testutils.DecodeProblem(s.T(), resp)
		s.Equal("Validation failed", pd.Title)
	})

	s.Run("Malformed body", func() {
		resp := s.app.Do(fiber.MethodPost, clientsPath+"/client", `{"dni":`)
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})

	s.Len(s.app.Notifier.Sent(), 1)
}

func (s *ClientTestSuite) TestGetUnknownClient() {
	resp := s.app.Do(fiber.MethodGet, clientsPath+"/client/999", "")
	s.Require().Equal(fiber.StatusNotFound, resp.StatusCode)
	testutils.DecodeProblem(s.T(), resp)
}

func (s *ClientTestSuite) TestUpdateRequiresActiveClient() {
	s.app.RegisterClient(s.T(), "111", "ana@example.com")

	resp := s.app.Do(fiber.MethodPut, clientsPath+"/client/111", `{"name":"Ana Maria"}`)
	resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusConflict, resp.StatusCode)

	s.Require().Equal(fiber.StatusOK, s.status(fiber.MethodPut, clientsPath+"/client/111/status/active"))

	resp = s.app.Do(fiber.MethodPut, clientsPath+"/client/111",
		`{"name":"Ana Maria","email":"ana.maria@example.com"}`)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	data := testutils.DataMap(s.T(), testutils.DecodeResponse(s.T(), resp))
	s.Equal("Ana Maria", data["name"])
	s.Equal("ana.maria@example.com", data["email"])
	s.Equal("Main Street 111", data["address"])
}

func (s *ClientTestSuite) TestStatusAndDelete() {
	s.app.RegisterClient(s.T(), "111", "ana@example.com")

	s.Equal(fiber.StatusBadRequest, s.status(fiber.MethodPut, clientsPath+"/client/111/status/gone"))
	s.Equal(fiber.StatusNotFound, s.status(fiber.MethodPut, clientsPath+"/client/999/status/active"))

	s.Require().Equal(fiber.StatusOK, s.status(fiber.MethodPut, clientsPath+"/client/111/status/banned"))
	s.Equal("BANNED", s.get("111")["status"])

	s.Require().Equal(fiber.StatusOK, s.status(fiber.MethodDelete, clientsPath+"/client/111"))
	s.Equal("INACTIVE", s.get("111")["status"])
}

func (s *ClientTestSuite) TestListByStatus() {
	s.Equal(fiber.StatusNoContent, s.status(fiber.MethodGet, clientsPath))

	s.app.RegisterClient(s.T(), "111", "ana@example.com")
	s.app.RegisterClient(s.T(), "222", "bob@example.com")

	resp := s.app.Do(fiber.MethodGet, clientsPath+"?status=pending", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	body := testutils.DecodeResponse(s.T(), resp)
	s.Require().NotNil(body.Total)
	s.Equal(2, *body.Total)

	s.Equal(fiber.StatusBadRequest, s.status(fiber.MethodGet, clientsPath+"?status=unknown"))
}

func (s *ClientTestSuite) addAdherent(mainDni, dni, email string) map[string]any {
	body := `{"dni":"` + dni + `","name":"Adherent ` + dni + `","email":"` + email + `","password":"secret123"}`
	resp := s.app.Do(fiber.MethodPost, clientsPath+"/client/"+mainDni+"/adherents/adherent", body)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	return testutils.DataMap(s.T(), testutils.DecodeResponse(s.T(), resp))
}

func adherentPath(mainDni, dni string) string {
	return clientsPath + "/client/" + mainDni + "/adherents/adherent/" + dni
}

func (s *ClientTestSuite) TestAdherents() {
	s.app.RegisterClient(s.T(), "111", "ana@example.com")
	s.app.RegisterClient(s.T(), "222", "bob@example.com")
	s.Equal(fiber.StatusNoContent, s.status(fiber.MethodGet, clientsPath+"/client/111/adherents"))

	data := s.addAdherent("111", "333", "kid@example.com")
	s.Equal("ACTIVE", data["status"])
	s.Contains(data, "bankingAccount")

	s.Run("Unknown main client", func() {
		resp := s.app.Do(fiber.MethodPost, clientsPath+"/client/999/adherents/adherent",
			`{"dni":"444","name":"X","email":"x@example.com","password":"secret123"}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusNotFound, resp.StatusCode)
	})

	s.Run("List and get", func() {
		resp := s.app.Do(fiber.MethodGet, clientsPath+"/client/111/adherents", "")
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		body := testutils.DecodeResponse(s.T(), resp)
		s.Equal(1, *body.Total)

		resp = s.app.Do(fiber.MethodGet, adherentPath("111", "333"), "")
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		got := testutils.DataMap(s.T(), testutils.DecodeResponse(s.T(), resp))
		s.Equal("333", got["dni"])
	})

	s.Run("Lookup is scoped to the main client", func() {
		s.Equal(fiber.StatusNotFound, s.status(fiber.MethodGet, adherentPath("222", "333")))
		s.Equal(fiber.StatusNotFound, s.status(fiber.MethodGet, adherentPath("111", "222")))
	})

	s.Run("Listing shows the relationship", func() {
		resp := s.app.Do(fiber.MethodGet, clientsPath+"?status=active", "")
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		body := testutils.DecodeResponse(s.T(), resp)
		items, ok := body.Data.([]any)
		s.Require().True(ok)
		s.Require().Len(items, 1)
		item, ok := items[0].(map[string]any)
		s.Require().True(ok)
		s.Equal("111", item["mainClientDni"])

		resp = s.app.Do(fiber.MethodGet, clientsPath+"?status=pending", "")
		body = testutils.DecodeResponse(s.T(), resp)
		items, ok = body.Data.([]any)
		s.Require().True(ok)
		var adherents []any
		for _, it := range items {
			if m := it.(map[string]any); m["dni"] == "111" {
				adherents, _ = m["adherents"].([]any)
			}
		}
		s.Len(adherents, 1)
	})

	s.Run("Update ignores the status gate", func() {
		s.Require().Equal(fiber.StatusOK, s.status(fiber.MethodPut, adherentPath("111", "333")+"/status/inactive"))
		resp := s.app.Do(fiber.MethodPut, adherentPath("111", "333"), `{"address":"Elm Street 3"}`)
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		got := testutils.DataMap(s.T(), testutils.DecodeResponse(s.T(), resp))
		s.Equal("Elm Street 3", got["address"])
		s.Equal("INACTIVE", got["status"])
	})
}

func (s *ClientTestSuite) TestRemoveAdherent() {
	s.app.RegisterClient(s.T(), "111", "ana@example.com")
	data := s.addAdherent("111", "333", "kid@example.com")
	acc, ok := data["bankingAccount"].(map[string]any)
	s.Require().True(ok)
	number, ok := acc["accountNumber"].(string)
	s.Require().True(ok)
	s.app.Recharge(s.T(), number, "25")

	s.Equal(fiber.StatusNotFound, s.status(fiber.MethodDelete, adherentPath("999", "333")))
	s.Require().Equal(fiber.StatusOK, s.status(fiber.MethodDelete, adherentPath("111", "333")))

	s.Equal(fiber.StatusNotFound, s.status(fiber.MethodGet, adherentPath("111", "333")))
	s.Equal(fiber.StatusNotFound, s.status(fiber.MethodGet, clientsPath+"/client/333"))
	s.Equal(fiber.StatusNotFound, s.status(fiber.MethodGet, "/api/v1/accounts/account/"+number))
	s.Equal(fiber.StatusOK, s.status(fiber.MethodGet, clientsPath+"/client/111"))
}
