package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.invalid_request":        "invalid request",
		"error.invalid_credentials":    "could not validate credentials",
		"error.token_expired":          "token expired",
		"error.token_revoked":          "token invalidated (logged out)",
		"error.inactive_user":          "inactive user",
		"error.forbidden":              "operation not permitted",
		"error.not_found":              "not found",
		"error.email_exists":           "email already registered",
		"error.invalid_email":          "invalid email address",
		"error.invalid_password":       "invalid password",
		"error.invalid_timezone":       "invalid timezone",
		"error.invalid_language":       "invalid language",
		"error.invalid_device_type":    "invalid device type",
		"error.device_name_exists":     "device name already used",
		"error.device_linked":          "device already linked to a plant",
		"error.already_revoked":        "token already invalidated",
		"error.token_mismatch":         "token does not belong to this user",
		"error.weak_password":          "password does not meet the policy",
		"error.invalid_sensor_name":    "invalid sensor name",
		"error.reading_out_of_range":   "sensor reading out of range",
		"error.internal":               "internal server error",
		"error.rate_limited":           "too many attempts, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable",

		"error.password_min_length":      "password must be at least %d characters",
		"error.password_max_length":      "password must be at most %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a digit",
		"error.password_require_special": "password must contain a special character",

		"email.device_token.subject": "Your Smart Pot device token",
		"email.device_token.body":    "Device %s (%s) has been paired with your account.\n\nDevice token: %s\n\nConfigure your pot with this token to start sending readings.",
		"email.reset.subject":        "Reset your Smart Pot password",
		"email.reset.body":           "We received a request to reset your password.\n\nOpen the link below to choose a new one:\n%s\n\nIf you did not request this, ignore this message.",
	},
	LocalePL: {
		"error.invalid_request":        "nieprawidłowe żądanie",
		"error.invalid_credentials":    "nie można zweryfikować danych logowania",
		"error.token_expired":          "token wygasł",
		"error.token_revoked":          "token unieważniony (wylogowano)",
		"error.inactive_user":          "nieaktywny użytkownik",
		"error.forbidden":              "operacja niedozwolona",
		"error.not_found":              "nie znaleziono",
		"error.email_exists":           "adres e-mail jest już zarejestrowany",
		"error.invalid_email":          "nieprawidłowy adres e-mail",
		"error.invalid_password":       "nieprawidłowe hasło",
		"error.invalid_timezone":       "nieprawidłowa strefa czasowa",
		"error.invalid_language":       "nieprawidłowy język",
		"error.invalid_device_type":    "nieprawidłowy typ urządzenia",
		"error.device_name_exists":     "nazwa urządzenia jest już zajęta",
		"error.device_linked":          "urządzenie jest już powiązane z rośliną",
		"error.already_revoked":        "token został już unieważniony",
		"error.token_mismatch":         "token nie należy do tego użytkownika",
		"error.weak_password":          "hasło nie spełnia wymagań",
		"error.invalid_sensor_name":    "nieprawidłowa nazwa czujnika",
		"error.reading_out_of_range":   "odczyt czujnika poza zakresem",
		"error.internal":               "wewnętrzny błąd serwera",
		"error.rate_limited":           "zbyt wiele prób, spróbuj ponownie za %d sekund",
		"error.rate_limit_unavailable": "ogranicznik żądań niedostępny",

		"error.password_min_length":      "hasło musi mieć co najmniej %d znaków",
		"error.password_max_length":      "hasło może mieć najwyżej %d znaków",
		"error.password_require_upper":   "hasło musi zawierać wielką literę",
		"error.password_require_lower":   "hasło musi zawierać małą literę",
		"error.password_require_number":  "hasło musi zawierać cyfrę",
		"error.password_require_special": "hasło musi zawierać znak specjalny",

		"email.device_token.subject": "Token Twojego urządzenia Smart Pot",
		"email.device_token.body":    "Urządzenie %s (%s) zostało sparowane z Twoim kontem.\n\nToken urządzenia: %s\n\nSkonfiguruj doniczkę tym tokenem, aby zaczęła wysyłać odczyty.",
		"email.reset.subject":        "Zresetuj hasło Smart Pot",
		"email.reset.body":           "Otrzymaliśmy prośbę o zresetowanie hasła.\n\nOtwórz poniższy link, aby ustawić nowe:\n%s\n\nJeśli to nie Ty, zignoruj tę wiadomość.",
	},
}
