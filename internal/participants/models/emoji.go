package models

// emojiNames lists the emoji a team may take, with the name used when the
// code name generator is "emoji". Order is the assignment order for teams
// that do not pick one.
var emojiNames = []struct {
	Emoji string
	Name  string
}{
	{"🐶", "Dog"},
	{"🐱", "Cat"},
	{"🐭", "Mouse"},
	{"🐹", "Hamster"},
	{"🐰", "Rabbit"},
	{"🦊", "Fox"},
	{"🐻", "Bear"},
	{"🐼", "Panda"},
	{"🐨", "Koala"},
	{"🐯", "Tiger"},
	{"🦁", "Lion"},
	{"🐮", "Cow"},
	{"🐷", "Pig"},
	{"🐸", "Frog"},
	{"🐵", "Monkey"},
	{"🐔", "Chicken"},
	{"🐧", "Penguin"},
	{"🐦", "Bird"},
	{"🦆", "Duck"},
	{"🦅", "Eagle"},
	{"🦉", "Owl"},
	{"🦇", "Bat"},
	{"🐺", "Wolf"},
	{"🐗", "Boar"},
	{"🐴", "Horse"},
	{"🦄", "Unicorn"},
	{"🐝", "Honeybee"},
	{"🐛", "Bug"},
	{"🦋", "Butterfly"},
	{"🐌", "Snail"},
	{"🐞", "Lady Beetle"},
	{"🐢", "Turtle"},
	{"🐍", "Snake"},
	{"🦎", "Lizard"},
	{"🐙", "Octopus"},
	{"🦑", "Squid"},
	{"🦀", "Crab"},
	{"🐡", "Blowfish"},
	{"🐠", "Tropical Fish"},
	{"🐬", "Dolphin"},
	{"🐳", "Whale"},
	{"🦈", "Shark"},
	{"🐊", "Crocodile"},
	{"🐘", "Elephant"},
	{"🦒", "Giraffe"},
	{"🦘", "Kangaroo"},
	{"🌵", "Cactus"},
	{"🌻", "Sunflower"},
	{"🍄", "Mushroom"},
	{"🌈", "Rainbow"},
}

// EmojiName returns the name of a team emoji.
func EmojiName(emoji string) (string, bool) {
	for _, e := range emojiNames {
		if e.Emoji == emoji {
			return e.Name, true
		}
	}
	return "", false
}

// NextEmoji returns the first emoji not in use, or "" when all are taken.
func NextEmoji(inUse map[string]bool) string {
	for _, e := range emojiNames {
		if !inUse[e.Emoji] {
			return e.Emoji
		}
	}
	return ""
}
