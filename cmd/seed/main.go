// Command seed initializes the pinned-message store and writes a handful of
// demo registered users through the Store API. With -dry-run it targets an
// in-memory backend and prints the resulting document instead of touching
// the channel.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/oggyb/lilita/internal/botapi"
	"github.com/oggyb/lilita/internal/config"
	"github.com/oggyb/lilita/internal/model"
	"github.com/oggyb/lilita/internal/store"
	"github.com/oggyb/lilita/internal/store/backend"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "seed an in-memory store and print the document")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.New()

	var mem *backend.Memory
	var be store.Backend
	if *dryRun {
		mem = backend.NewMemory()
		be = mem
	} else {
		if cfg.Bot.Token == "" || cfg.Store.ChannelID == 0 {
			log.Fatal("BOT_TOKEN and DB_CHANNEL_ID must be set")
		}
		tg, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
		if err != nil {
			log.Fatalf("failed to authorize bot: %v", err)
		}
		be = backend.NewChannel(botapi.NewClient(tg), cfg.Store.ChannelID)
	}

	st := store.New(be, store.Options{CharLimit: cfg.Store.CharLimit})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := st.Initialize(ctx, 0); err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	for _, rec := range demoUsers() {
		if err := st.PutUser(ctx, rec); err != nil {
			log.Printf("skipping user %d: %v", rec.TelegramID, err)
			continue
		}
		log.Printf("seeded user %d (%s)", rec.TelegramID, rec.Name)
	}

	if *dryRun {
		log.Printf("document:\n%s", mem.Content())
	}
	log.Println("Seeding completed.")
}

// demoUsers returns a small cast of registered profiles, one VIP pair so
// like/match flows can be exercised right away.
func demoUsers() []*model.UserRecord {
	now := time.Now().Unix()
	fresh := func(id int64, name string, age int, g model.Gender, in model.Interest, city, bio string, vip bool) *model.UserRecord {
		return &model.UserRecord{
			TelegramID: id, Name: name, Age: age, Gender: g, Interest: in,
			City: city, Bio: bio, Registered: true, VIP: vip,
			Coins: model.DefaultCoins,
			Likes: []string{}, LikedBy: []string{}, Matches: []string{},
			CreatedAt: now,
		}
	}
	return []*model.UserRecord{
		fresh(1001, "Alex", 25, model.GenderMale, model.InterestFemale, "Paris", "Loves hiking.", true),
		fresh(1002, "Bea", 24, model.GenderFemale, model.InterestMale, "Lyon", "Coffee first.", true),
		fresh(1003, "Chris", 28, model.GenderMale, model.InterestBoth, "Nice", "Guitarist.", false),
		fresh(1004, "Dana", 26, model.GenderFemale, model.InterestBoth, "Lille", "Runner.", false),
	}
}
