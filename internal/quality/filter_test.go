package quality_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"replyloop.app/engine/internal/model"
	"replyloop.app/engine/internal/quality"
)

func postWithText(text string) model.Post {
	return model.Post{ID: "1", Text: text}
}

// Long enough to clear the visible-length floor on its own.
const substantiveText = "Shipping a small feature every day beats shipping a big feature every quarter, and the compounding is real."

var _ = Describe("IsQualityPost", func() {
	It("accepts a substantive original post", func() {
		Expect(quality.IsQualityPost(postWithText(substantiveText), true)).To(BeTrue())
	})

	It("is deterministic for the same input", func() {
		post := postWithText(substantiveText)
		first := quality.IsQualityPost(post, true)
		for i := 0; i < 10; i++ {
			Expect(quality.IsQualityPost(post, true)).To(Equal(first))
		}
	})

	Describe("political filtering", func() {
		politicalText := "The election results tonight are going to change everything about how this country operates."

		It("rejects political content when skipPolitical is set", func() {
			Expect(quality.IsQualityPost(postWithText(politicalText), true)).To(BeFalse())
		})

		It("keeps political content when skipPolitical is off", func() {
			Expect(quality.IsQualityPost(postWithText(politicalText), false)).To(BeTrue())
		})

		It("matches keywords case-insensitively", func() {
			text := "MAGA rallies are dominating the news cycle again this week, for better or for worse honestly."
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeFalse())
		})

		It("matches substrings inside longer words, false positives included", func() {
			// "voter" appears inside "devoters" - over-filtering is the
			// documented trade-off, not a bug to fix here.
			text := "The most committed devoters of this craft practice their fundamentals every single morning."
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeFalse())
		})
	})

	Describe("length rule", func() {
		It("rejects short posts", func() {
			Expect(quality.IsQualityPost(postWithText("gm everyone"), true)).To(BeFalse())
		})

		It("ignores URLs when measuring length", func() {
			// Visible text is short; the URL must not count toward the 50 chars.
			text := "check this out https://example.com/a-very-long-path/that-would-otherwise-pass-the-length-check"
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeFalse())
		})

		It("accepts posts exactly at the boundary", func() {
			text := "01234567890123456789012345678901234567890123456789" // 50 chars
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeTrue())
		})

		It("rejects posts one character under the boundary", func() {
			text := "0123456789012345678901234567890123456789012345678" // 49 chars
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeFalse())
		})

		It("measures multi-byte text in characters, not bytes", func() {
			// 22 characters but 66 bytes in UTF-8; still under the floor.
			text := "毎日少しずつ機能を出荷するのが一番の近道です"
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeFalse())
		})

		It("accepts multi-byte posts that clear the floor", func() {
			text := "毎日少しずつ機能を出荷するのが一番の近道です。大きな機能を四半期に一度出すよりも、小さな改善を積み重ねるほうが結局は速いのです。"
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeTrue())
		})
	})

	Describe("reply and retweet rules", func() {
		It("rejects replies to other accounts", func() {
			text := "@someone totally agree with this, the ecosystem has been moving this direction for years now"
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeFalse())
		})

		It("rejects retweets", func() {
			text := "RT @someone shipping a small feature every day beats shipping a big feature every quarter"
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeFalse())
		})
	})

	Describe("hashtag spam rule", func() {
		It("rejects posts where hashtags exceed half the word count", func() {
			text := "new drop today #crypto #nft #web3 #gm #wagmi #moon #bullish #alpha #degen #mint #launch"
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeFalse())
		})

		It("tolerates a couple of hashtags in a real post", func() {
			text := "We just shipped our biggest release of the year, full breakdown in the thread below #golang #opensource"
			Expect(quality.IsQualityPost(postWithText(text), true)).To(BeTrue())
		})
	})
})
