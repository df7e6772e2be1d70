package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sharetube/partyclient/internal/app"
	"github.com/sharetube/partyclient/internal/controller"
	"github.com/sharetube/partyclient/internal/domain"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
	usage        string
}

var (
	apiURL = configVar[string]{
		envKey:       "CLIENT_API_URL",
		flagKey:      "api-url",
		defaultValue: "http://localhost:8000",
		usage:        "Backend REST base URL",
	}
	wsURL = configVar[string]{
		envKey:       "CLIENT_WS_URL",
		flagKey:      "ws-url",
		defaultValue: "ws://localhost:8000",
		usage:        "Backend room channel base URL",
	}
	roomID = configVar[string]{
		envKey:       "CLIENT_ROOM_ID",
		flagKey:      "room-id",
		defaultValue: controller.DefaultRoomID,
		usage:        "Room to join",
	}
	userID = configVar[string]{
		envKey:       "CLIENT_USER_ID",
		flagKey:      "user-id",
		defaultValue: "",
		usage:        "User id, generated when empty",
	}
	duration = configVar[int]{
		envKey:       "CLIENT_DURATION",
		flagKey:      "duration",
		defaultValue: domain.DefaultDuration,
		usage:        "Content duration in seconds",
	}
	reconnectDelay = configVar[time.Duration]{
		envKey:       "CLIENT_RECONNECT_DELAY",
		flagKey:      "reconnect-delay",
		defaultValue: 3 * time.Second,
		usage:        "Delay before reconnecting the room channel",
	}
	sendInterval = configVar[time.Duration]{
		envKey:       "CLIENT_SEND_INTERVAL",
		flagKey:      "send-interval",
		defaultValue: domain.DefaultSendInterval,
		usage:        "Minimum interval between chat and emoji sends",
	}
	countdown = configVar[int]{
		envKey:       "CLIENT_COUNTDOWN",
		flagKey:      "countdown",
		defaultValue: domain.DefaultCountdown,
		usage:        "Seconds until the party starts",
	}
	logLevel = configVar[string]{
		envKey:       "CLIENT_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
		usage:        "Logging level",
	}
	noColor = configVar[bool]{
		envKey:       "CLIENT_NO_COLOR",
		flagKey:      "no-color",
		defaultValue: color.NoColor,
		usage:        "Disable colored balances (defaults to on when NO_COLOR is set or stdout is not a terminal)",
	}
)

func bind[T any](v configVar[T]) {
	viper.BindEnv(v.flagKey, v.envKey)
	viper.SetDefault(v.flagKey, v.defaultValue)
}

func loadAppConfig() *app.AppConfig {
	// a missing .env is fine, the environment and flags still apply
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}

	pflag.String(apiURL.flagKey, apiURL.defaultValue, apiURL.usage)
	pflag.String(wsURL.flagKey, wsURL.defaultValue, wsURL.usage)
	pflag.String(roomID.flagKey, roomID.defaultValue, roomID.usage)
	pflag.String(userID.flagKey, userID.defaultValue, userID.usage)
	pflag.Int(duration.flagKey, duration.defaultValue, duration.usage)
	pflag.Duration(reconnectDelay.flagKey, reconnectDelay.defaultValue, reconnectDelay.usage)
	pflag.Duration(sendInterval.flagKey, sendInterval.defaultValue, sendInterval.usage)
	pflag.Int(countdown.flagKey, countdown.defaultValue, countdown.usage)
	pflag.String(logLevel.flagKey, logLevel.defaultValue, logLevel.usage)
	pflag.Bool(noColor.flagKey, noColor.defaultValue, noColor.usage)
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	bind(apiURL)
	bind(wsURL)
	bind(roomID)
	bind(userID)
	bind(duration)
	bind(reconnectDelay)
	bind(sendInterval)
	bind(countdown)
	bind(logLevel)
	bind(noColor)

	config := &app.AppConfig{
		APIURL:         viper.GetString(apiURL.flagKey),
		WSURL:          viper.GetString(wsURL.flagKey),
		RoomID:         viper.GetString(roomID.flagKey),
		UserID:         viper.GetString(userID.flagKey),
		Duration:       viper.GetInt(duration.flagKey),
		ReconnectDelay: viper.GetDuration(reconnectDelay.flagKey),
		SendInterval:   viper.GetDuration(sendInterval.flagKey),
		Countdown:      viper.GetInt(countdown.flagKey),
		LogLevel:       viper.GetString(logLevel.flagKey),
		NoColor:        viper.GetBool(noColor.flagKey),
	}
	if config.UserID == "" {
		config.UserID = controller.NewUserID()
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Fprintf(os.Stderr, "starting client with config: %s\n", jsonConfig)

	if err := app.Run(ctx, appConfig); err != nil {
		log.Fatal(err)
	}
}
