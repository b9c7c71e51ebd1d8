package constants

// Token purposes carried in the JWT purpose claim.
const (
	TokenPurposeAccess  = "access"
	TokenPurposeRefresh = "refresh"
	TokenPurposeReset   = "reset"
)

// Device hardware types.
const (
	DeviceTypeNodeMCU = "NODEMCU"
	DeviceTypeESP     = "ESP"
)

// Supported device types in validation order.
var SupportedDeviceTypes = []string{DeviceTypeNodeMCU, DeviceTypeESP}

// Sensor names.
const (
	SensorHumidity    = "hum"
	SensorLux         = "lux"
	SensorTemperature = "temp"
)

// Supported sensor names in validation order.
var SupportedSensors = []string{SensorTemperature, SensorLux, SensorHumidity}

// Sensor value bounds.
const (
	HumidityMin    = 0.0
	LuxMin         = 0.0
	LuxMax         = 65535.0
	TemperatureMin = -40.0
	TemperatureMax = 85.0
)

// User languages.
const (
	LanguagePolish  = "PL"
	LanguageEnglish = "ENG"
)

// Supported user languages in validation order.
var SupportedLanguages = []string{LanguagePolish, LanguageEnglish}

// Site locales for outgoing messages (with fallback order).
const (
	LocaleEn = "en"
	LocalePl = "pl"
)

var SupportedLocales = []string{LocaleEn, LocalePl}

// Default user profile values.
const (
	DefaultTimezone = "UTC"
	DefaultLanguage = LanguageEnglish
)

// Queue constants.
const (
	QueueDefault         = "default"
	QueueCritical        = "critical"
	TaskDeviceTokenEmail = "device:token_email"
	TaskPasswordReset    = "user:password_reset_email"
)

// Cache defaults.
const (
	RedisPrefixDefault = "sp"
)
