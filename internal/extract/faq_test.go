package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFAQAccordionStrategy(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"/pages/faq": `<html><body>
		  <div class="faq-item">
		    <h3 class="faq-question">Do you ship internationally?</h3>
		    <div class="faq-answer">Yes, to over 40 countries.</div>
		  </div>
		  <div class="faq-item">
		    <h3 class="faq-question">How long is delivery?</h3>
		    <div class="faq-answer">3 to 5 business days.</div>
		  </div>
		</body></html>`,
	}
	out := applied(t, &FAQExtractor{}, newTarget(t, "<html></html>", pages))

	require.Len(t, out.FAQs, 2)
	assert.Equal(t, "Do you ship internationally?", out.FAQs[0].Question)
	assert.Equal(t, "Yes, to over 40 countries.", out.FAQs[0].Answer)
}

func TestFAQDefinitionListStrategy(t *testing.T) {
	t.Parallel()

	// Definition pairs only: strategy 2 fires, and the question-mark
	// heading in the page footer must not also be picked up by strategy 3.
	pages := map[string]string{
		"/faq": `<html><body>
		  <dl>
		    <dt>What sizes do you carry?</dt>
		    <dd>XS through 4XL.</dd>
		  </dl>
		  <h4>Still have questions?</h4>
		  <p>Email us anytime.</p>
		</body></html>`,
	}
	out := applied(t, &FAQExtractor{}, newTarget(t, "<html></html>", pages))

	require.Len(t, out.FAQs, 1)
	assert.Equal(t, "What sizes do you carry?", out.FAQs[0].Question)
	assert.Equal(t, "XS through 4XL.", out.FAQs[0].Answer)
}

func TestFAQHeadingHeuristic(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"/help": `<html><body>
		  <h3>Can I change my order?</h3>
		  <p>Within one hour of purchase.</p>
		  <h3>Our Mission</h3>
		  <p>Not a question, skipped.</p>
		</body></html>`,
	}
	out := applied(t, &FAQExtractor{}, newTarget(t, "<html></html>", pages))

	require.Len(t, out.FAQs, 1)
	assert.Equal(t, "Can I change my order?", out.FAQs[0].Question)
	assert.Equal(t, "Within one hour of purchase.", out.FAQs[0].Answer)
}

func TestFAQFirstPageWithResultsWins(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"/pages/faq": `<html><body><p>nothing useful</p></body></html>`,
		"/faq": `<html><body>
		  <div class="accordion-item">
		    <h4 class="question">Is gift wrapping available?</h4>
		    <div class="answer">Yes, at checkout.</div>
		  </div>
		</body></html>`,
	}
	out := applied(t, &FAQExtractor{}, newTarget(t, "<html></html>", pages))

	require.Len(t, out.FAQs, 1)
	assert.Equal(t, "Is gift wrapping available?", out.FAQs[0].Question)
}

func TestFAQNoPageFound(t *testing.T) {
	t.Parallel()

	out := applied(t, &FAQExtractor{}, newTarget(t, "<html></html>", nil))
	assert.NotNil(t, out.FAQs)
	assert.Empty(t, out.FAQs)
}
