package scrape

// In-page extraction scripts. Selectors track the markup the platforms
// currently serve for search results and product pages; __LIMIT__ is
// replaced with the per-platform listing bound before evaluation.

const amazonListJS = `
(function() {
	var out = [];
	var cards = document.querySelectorAll('div[data-component-type="s-search-result"]');
	for (var i = 0; i < cards.length && out.length < __LIMIT__; i++) {
		var c = cards[i];
		var titleEl = c.querySelector('h2 a span.a-text-normal, span.a-size-medium.a-color-base.a-text-normal, span.a-size-base-plus.a-color-base.a-text-normal');
		var priceEl = c.querySelector('span.a-price > span.a-offscreen, span.a-price-whole');
		var origEl = c.querySelector('span.a-price.a-text-price > span.a-offscreen');
		var ratingEl = c.querySelector('span.a-icon-alt');
		var linkEl = c.querySelector('h2 a.a-link-normal[href*="/dp/"], a.a-link-normal.s-underline-text[href*="/dp/"]');
		var asin = c.getAttribute('data-asin');
		var href = '';
		if (asin) {
			href = '/dp/' + asin;
		} else if (linkEl) {
			href = linkEl.getAttribute('href') || '';
		}
		if (!href) continue;
		out.push({
			title: titleEl ? titleEl.innerText.trim() : '',
			price: priceEl ? priceEl.innerText.trim() : '',
			original_price: origEl ? origEl.innerText.trim() : '',
			rating: ratingEl ? ratingEl.innerText.trim() : '',
			url: href
		});
	}
	return out;
})()
`

const amazonOffersJS = `
(function() {
	var texts = [];
	var seen = {};
	var nodes = document.querySelectorAll(
		'#itembox-InstantBankDiscount, [id*="InstantBankDiscount"], ' +
		'.a-carousel-card .offers-items-content, #sopp_feature_div, #valuePick_feature_div'
	);
	for (var i = 0; i < nodes.length; i++) {
		var lines = (nodes[i].innerText || '').split('\n');
		for (var j = 0; j < lines.length; j++) {
			var t = lines[j].trim();
			if (t.length < 15 || t.length > 250) continue;
			if (!/bank|credit card|cashback|discount|emi/i.test(t)) continue;
			if (seen[t]) continue;
			seen[t] = true;
			texts.push(t);
		}
	}
	return texts;
})()
`

const flipkartListJS = `
(function() {
	var out = [];
	var seen = {};
	var cards = document.querySelectorAll('div[data-id], div._13oc-S, div.cPHDOP, div._1AtVbE, div._4ddWXP');
	for (var i = 0; i < cards.length && out.length < __LIMIT__; i++) {
		var c = cards[i];
		var titleEl = c.querySelector('._4rR01T, .s1Q9rs, .IRpwTa, .KzDlHZ, .wjcEIp, .VU-ZEz, ._2WkVRV');
		var priceEl = c.querySelector('._30jeq3, ._1_WHN1, .Nx9bqj, ._4b7s3u');
		var origEl = c.querySelector('._3I9_wc, .yRaY8j');
		var ratingEl = c.querySelector('._3LWZlK, ._1lRcqv');
		var linkEl = c.querySelector('a[href*="/p/"], a[href*="/product/"], a._1fQZEK, a.s1Q9rs, a.IRpwTa');
		if (!linkEl) continue;
		var href = linkEl.getAttribute('href') || '';
		if (!href || seen[href]) continue;
		seen[href] = true;
		out.push({
			title: titleEl ? titleEl.innerText.trim() : '',
			price: priceEl ? priceEl.innerText.trim() : '',
			original_price: origEl ? origEl.innerText.trim() : '',
			rating: ratingEl ? ratingEl.innerText.trim() : '',
			url: href
		});
	}
	return out;
})()
`

const flipkartOffersJS = `
(function() {
	var texts = [];
	var seen = {};
	var nodes = document.querySelectorAll('li._16eBzU, li.kF1Ml8, ._3TT44I li, .XUp0WS li, li');
	for (var i = 0; i < nodes.length; i++) {
		var t = (nodes[i].innerText || '').replace(/\s+/g, ' ').trim();
		if (t.length < 15 || t.length > 250) continue;
		if (!/bank offer|special price|credit card|cashback|no cost emi/i.test(t)) continue;
		if (seen[t]) continue;
		seen[t] = true;
		texts.push(t);
	}
	return texts;
})()
`
